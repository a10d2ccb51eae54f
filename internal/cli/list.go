package cli

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-survey/internal/client"
	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/MKhiriev/go-field-survey/models"
	"github.com/spf13/cobra"
)

func newListCmd(s *session) *cobra.Command {
	var filter models.ObservationFilter

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored observations, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error {
				list, err := a.Services().ObservationService.List(ctx, filter)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintln(out, "no observations")
					return nil
				}
				for _, o := range list {
					printRow(out, o)
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&filter.Search, "search", "s", "", "Case-insensitive search over station, date, weekday and impressions")
	f.BoolVar(&filter.PendingOnly, "pending", false, "Only records not yet synced")

	return cmd
}

func newShowCmd(s *session) *cobra.Command {
	var syncFirst bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one observation as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error {
				svc := a.Services().ObservationService

				var (
					o   models.Observation
					err error
				)
				if syncFirst {
					o, _, err = svc.SyncOne(ctx, args[0])
				} else {
					o, err = svc.Get(ctx, args[0])
				}
				if err != nil {
					return err
				}
				return printObservation(cmd.OutOrStdout(), o)
			})
		},
	}

	cmd.Flags().BoolVar(&syncFirst, "sync", false, "Run a sync pass before printing")

	return cmd
}
