package main

import (
	"github.com/ngx-env/ngxenv/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newRootCmd() *cobra.Command {
	cfg, cfgErr := config.Load()

	cmd := &cobra.Command{
		Use:           "ngxenv",
		Short:         "Set up @ngx-env/builder in an Angular workspace",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return cfgErr
		},
	}

	cmd.PersistentFlags().String("root", cfg.Root, "Angular workspace directory")
	cmd.PersistentFlags().Bool("verbose", cfg.Verbose, "Log debug details to stderr")

	cmd.AddCommand(
		newAddCmd(cfg),
		newProjectsCmd(),
		newCopySchemaCmd(),
	)

	return cmd
}

// newLogger returns a debug logger writing to the command's stderr when
// --verbose is set, and a no-op logger otherwise.
func newLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(cmd.ErrOrStderr()), zapcore.DebugLevel)
	return zap.New(core)
}
