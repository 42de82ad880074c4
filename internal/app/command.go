package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// BuildFunc builds the root handler of an app. ctx is cancelled on shutdown.
type BuildFunc func(ctx context.Context, log *logrus.Logger) (http.Handler, error)

// NewCommand returns the root command of an app. Run without arguments it
// serves the app with DefaultConfig.
func NewCommand(use, short string, build BuildFunc) *cobra.Command {
	cfg := DefaultConfig()
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := NewLogger(cfg)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h, err := build(ctx, log)
			if err != nil {
				return fmt.Errorf("build %s: %w", use, err)
			}
			return Serve(ctx, cfg, h, log)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "address to listen on")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text or json)")
	return cmd
}

// Main runs cmd and exits non-zero when it fails.
func Main(cmd *cobra.Command) {
	if err := execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		logrus.WithError(err).Error(cmd.Name() + " failed")
	}
	return err
}
