package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-reactive/pkg/styles"
)

type compileOptions struct {
	Variables []string
}

func newCompileCmd(root *rootFlags) *cobra.Command {
	opts := compileOptions{}

	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile CSS into normalised rules, reading stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := root.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			styles.Configure(
				styles.WithLogger(log),
				styles.WithCompiler(styles.NewParserCompiler(styles.WithCompilerLogger(log))),
			)
			defer styles.Configure(styles.WithLogger(nil), styles.WithCompiler(nil))

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runCompile(cmd.OutOrStdout(), in, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Variables, "var", nil, "Substitute var(--name) with value, as name=value (repeatable)")
	return cmd
}

func runCompile(out io.Writer, in io.Reader, opts compileOptions) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read css: %w", err)
	}

	fragment := styles.UnsafeCSS(string(data))
	for _, raw := range opts.Variables {
		name, value, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("invalid --var %q (want name=value)", raw)
		}
		if err := fragment.SetVariable(name, value); err != nil {
			return err
		}
	}

	sheet, err := fragment.StyleSheet()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, sheet.CSSText())
	return err
}
