package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-field-survey/internal/client"
	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/spf13/cobra"
)

func newRunCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Keep syncing in the background until interrupted",
		Long: `Run performs an initial sync, then syncs on every --sync-interval tick
and imports JSON files dropped into --import-dir. It stops on SIGINT or
SIGTERM after the running pass finishes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			return s.withApp(cmd, func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error {
				return a.Run(ctx)
			})
		},
	}
}
