package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-reactive/pkg/manifest"
)

type openAPIOptions struct {
	Schema string
	Tag    string
}

func newOpenAPICmd() *cobra.Command {
	opts := openAPIOptions{}

	cmd := &cobra.Command{
		Use:   "from-openapi <document>",
		Short: "Derive a component manifest from an OpenAPI schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			component, err := manifest.FromOpenAPI(cmd.Context(), data, opts.Schema, opts.Tag)
			if err != nil {
				return err
			}
			return manifest.Encode(cmd.OutOrStdout(), component)
		},
	}

	cmd.Flags().StringVarP(&opts.Schema, "schema", "s", "", "Schema name under components.schemas")
	cmd.Flags().StringVarP(&opts.Tag, "tag", "t", "", "Custom element tag for the component")
	cmd.MarkFlagRequired("schema") //nolint:errcheck
	cmd.MarkFlagRequired("tag")    //nolint:errcheck
	return cmd
}
