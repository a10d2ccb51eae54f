package cli

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-survey/internal/client"
	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/MKhiriev/go-field-survey/models"
	"github.com/spf13/cobra"
)

type payloadFlags struct {
	fields []string
	file   string
}

func (pf *payloadFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVarP(&pf.fields, "field", "f", nil, "Payload field as key=value; JSON values keep their type (repeatable)")
	f.StringVar(&pf.file, "payload-file", "", "JSON object used as the payload")
}

// build starts from base, or from the payload file when one is given, and
// applies the --field pairs on top.
func (pf *payloadFlags) build(base models.Payload) (models.Payload, error) {
	p := base.Clone()
	if pf.file != "" {
		var err error
		if p, err = readPayloadFile(pf.file); err != nil {
			return nil, err
		}
	}
	if p == nil {
		p = models.Payload{}
	}
	if err := parseFields(p, pf.fields); err != nil {
		return nil, err
	}
	return p, nil
}

func newAddCmd(s *session) *cobra.Command {
	var pf payloadFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new observation",
		Example: `  field-survey add -f lieustation="Gare Centrale" -f date=2025-05-01 -f affluence=12
  field-survey add --payload-file observation.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := pf.build(nil)
			if err != nil {
				return err
			}

			return s.withApp(cmd, func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error {
				o, err := a.Services().ObservationService.Create(ctx, payload)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", o.LogicalID)
				return nil
			})
		},
	}
	pf.register(cmd)

	return cmd
}

func newEditCmd(s *session) *cobra.Command {
	var (
		pf    payloadFlags
		unset []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an observation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error {
				svc := a.Services().ObservationService

				current, err := svc.Get(ctx, args[0])
				if err != nil {
					return err
				}
				payload, err := pf.build(current.Payload)
				if err != nil {
					return err
				}
				for _, key := range unset {
					delete(payload, key)
				}

				o, err := svc.Update(ctx, args[0], payload)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated %s (v%d)\n", displayID(o), o.Version)
				return nil
			})
		},
	}
	pf.register(cmd)
	cmd.Flags().StringArrayVar(&unset, "unset", nil, "Payload field to remove (repeatable)")

	return cmd
}

func newDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an observation locally and remotely",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error {
				if err := a.Services().ObservationService.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}
}
