package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-reactive/pkg/attribute"
)

type convertOptions struct {
	Type   string
	Legacy bool
	Absent bool
}

func newConvertCmd() *cobra.Command {
	opts := convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert (to|from) [value]",
		Short: "Run the attribute converter in either direction",
		Long: `convert to   reads a JSON value and prints the attribute text, or <removed>.
convert from reads attribute text and prints the decoded property value as JSON.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hint, err := attribute.ParseHint(opts.Type)
			if err != nil {
				return err
			}
			converter := attribute.Default
			if opts.Legacy {
				converter = attribute.Legacy
			}
			var value *string
			if len(args) == 2 {
				value = &args[1]
			}

			switch args[0] {
			case "to":
				return runConvertTo(cmd.OutOrStdout(), converter, hint, value)
			case "from":
				if opts.Absent {
					value = nil
				}
				return runConvertFrom(cmd.OutOrStdout(), converter, hint, value)
			default:
				return fmt.Errorf("unknown direction %q (want to or from)", args[0])
			}
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "string", "Type hint: "+hintList())
	cmd.Flags().BoolVar(&opts.Legacy, "legacy", false, "Use the legacy converter for structured hints")
	cmd.Flags().BoolVar(&opts.Absent, "absent", false, "Convert from a missing attribute")
	return cmd
}

func runConvertTo(out io.Writer, converter attribute.Converter, hint attribute.Hint, raw *string) error {
	var value any
	if raw != nil {
		if err := json.Unmarshal([]byte(*raw), &value); err != nil {
			// Bare words are taken as strings.
			value = *raw
		}
	}
	attr, err := converter.ToAttribute(value, hint)
	if err != nil {
		return err
	}
	if !attr.Set {
		_, err = fmt.Fprintln(out, "<removed>")
		return err
	}
	_, err = fmt.Fprintln(out, attr.Value)
	return err
}

func runConvertFrom(out io.Writer, converter attribute.Converter, hint attribute.Hint, raw *string) error {
	attr := attribute.Absent
	if raw != nil {
		attr = attribute.Present(*raw)
	}
	value, err := converter.FromAttribute(attr, hint)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		// NaN and other values JSON cannot carry.
		_, err = fmt.Fprintln(out, value)
		return err
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}

func hintList() string {
	var names []byte
	for i, hint := range attribute.Hints() {
		if i > 0 {
			names = append(names, ", "...)
		}
		names = append(names, hint.String()...)
	}
	return string(names)
}
