package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-reactive/pkg/manifest"
	"github.com/goliatone/go-reactive/pkg/preview"
)

type previewOptions struct {
	Dir    string
	Output string
	Title  string
	Nonce  string
	Tags   []string
}

func newPreviewCmd(root *rootFlags) *cobra.Command {
	opts := previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render an HTML catalogue of the components declared in a manifest directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := root.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			set, err := manifest.LoadFS(os.DirFS(opts.Dir), manifest.WithLogger(log))
			if err != nil {
				return err
			}
			if set.Empty() {
				return fmt.Errorf("no components found in %s", opts.Dir)
			}

			renderer, err := preview.New(
				preview.WithTitle(opts.Title),
				preview.WithNonce(opts.Nonce),
				preview.WithLogger(log),
			)
			if err != nil {
				return err
			}

			if opts.Output == "" {
				_, err = renderer.Render(set, opts.Tags, cmd.OutOrStdout())
				return err
			}
			page, err := renderer.Render(set, opts.Tags)
			if err != nil {
				return err
			}
			if err := os.WriteFile(opts.Output, []byte(page), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Dir, "manifests", "m", ".", "Directory of component manifests")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.Title, "title", "Components", "Page title")
	cmd.Flags().StringVar(&opts.Nonce, "nonce", "", "CSP nonce for generated style elements")
	cmd.Flags().StringSliceVar(&opts.Tags, "tag", nil, "Only render these component tags")
	return cmd
}
