package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootFlags struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "reactive-cli",
		Short:         "Compile component styles, convert attribute values and preview component manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "none", "Logging level: none, normal or debug")

	cmd.AddCommand(newCompileCmd(flags))
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newOpenAPICmd())

	return cmd
}

// logger writes console-encoded entries to w at the requested level.
func (f *rootFlags) logger(w io.Writer) (*zap.Logger, error) {
	var level zapcore.Level
	switch f.logLevel {
	case "", "none":
		return zap.NewNop(), nil
	case "normal":
		level = zapcore.InfoLevel
	case "debug":
		level = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("invalid log level %q (want none, normal or debug)", f.logLevel)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(w), level)
	return zap.New(core), nil
}
