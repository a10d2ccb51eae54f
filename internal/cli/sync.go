package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-field-survey/internal/client"
	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/MKhiriev/go-field-survey/models"
	"github.com/spf13/cobra"
)

func newSyncCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one sync pass and print its report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error {
				report, err := a.Services().SyncService.SyncNow(ctx)
				if err != nil {
					return err
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
}

func newStatusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity and local record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error {
				svcs := a.Services()
				all, err := svcs.ObservationService.List(ctx, models.ObservationFilter{})
				if err != nil {
					return err
				}
				pending := 0
				for _, o := range all {
					if !o.Synced {
						pending++
					}
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "remote:  %s\n", cfg.Adapter.HTTPAddress)
				fmt.Fprintf(out, "status:  %s\n", onlineBadge(svcs.SyncService.Online(ctx)))
				fmt.Fprintf(out, "records: %d\n", len(all))
				fmt.Fprintf(out, "pending: %d\n", pending)
				return nil
			})
		},
	}
}

func newMigrateIDsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-ids",
		Short: "Ask the remote API to rewrite legacy ids, then sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error {
				report, err := a.Services().SyncService.MigrateLegacyIDs(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "migrated %d of %d (%d failed)\n", report.Migrated, report.Total, report.Failed)
				for _, e := range report.Report {
					if e.Error != "" {
						fmt.Fprintf(out, "  %s: %s (%s)\n", e.OldID, e.Status, e.Error)
						continue
					}
					fmt.Fprintf(out, "  %s -> %s\n", e.OldID, e.NewID)
				}
				return nil
			})
		},
	}
}

func printReport(w io.Writer, r models.SyncReport) {
	fmt.Fprintf(w, "status:     %s\n", onlineBadge(r.Online))
	if !r.Completed() {
		fmt.Fprintf(w, "stopped at: %s\n", r.FinalPhase)
	}
	fmt.Fprintf(w, "downloaded: %d  overwritten: %d  reclaimed: %d  claimed: %d\n",
		r.Downloaded, r.Overwritten, r.Reclaimed, r.Claimed)
	fmt.Fprintf(w, "created:    %d  updated: %d  failed: %d  demoted: %d\n",
		r.Created, r.Updated, r.PushFailed, r.Demoted)
	if r.DeletionsFlushed > 0 {
		fmt.Fprintf(w, "deletions:  %d\n", r.DeletionsFlushed)
	}
	if r.Skipped > 0 || r.Duplicates > 0 {
		fmt.Fprintf(w, "skipped:    %d  duplicates: %d\n", r.Skipped, r.Duplicates)
	}
	fmt.Fprintf(w, "records:    %d  pending: %d\n", r.Total, r.Pending)
}
