package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-field-survey/internal/app"
	"github.com/MKhiriev/go-field-survey/internal/client"
	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/service"
	"github.com/MKhiriev/go-field-survey/models"
	"github.com/spf13/cobra"
)

const loggerRole = "go-field-survey"

// session is shared by all commands of one invocation.
type session struct {
	info models.AppBuildInfo
}

// NewRootCmd builds the full command tree.
func NewRootCmd(info models.AppBuildInfo) *cobra.Command {
	s := &session{info: info}

	root := &cobra.Command{
		Use:           "field-survey",
		Short:         "Offline-first client for tramway field observations",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newRunCmd(s),
		newSyncCmd(s),
		newStatusCmd(s),
		newListCmd(s),
		newShowCmd(s),
		newAddCmd(s),
		newEditCmd(s),
		newDeleteCmd(s),
		newImportCmd(s),
		newExportCmd(s),
		newMigrateIDsCmd(s),
		newVersionCmd(s),
	)

	return root
}

// Execute runs the command tree with args and prints a failure to stderr.
func Execute(ctx context.Context, info models.AppBuildInfo, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd(info)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", UserMessage(err))
	}
	return err
}

// loadConfig merges defaults, env, flags and the JSON file for cmd.
func (s *session) loadConfig(cmd *cobra.Command) (*config.ClientConfig, *logger.Logger, error) {
	cfg, err := config.GetClientConfig(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewClientLogger(loggerRole, cfg.Log), nil
}

// withApp opens the client for one command and closes it afterwards. Close
// waits for the sync triggered by the command.
func (s *session) withApp(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error) (err error) {
	cfg, log, err := s.loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := log.WithContext(cmd.Context())
	a, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", service.ErrLocalPersistence, closeErr)
		}
	}()

	return fn(ctx, cfg, a)
}

// UserMessage turns err into the line shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrObservationNotFound):
		return app.MsgObservationNotFound
	case errors.Is(err, service.ErrEmptyID):
		return app.MsgEmptyID
	case errors.Is(err, service.ErrMalformedImport):
		return app.MsgMalformedImport
	case errors.Is(err, service.ErrInvalidDataProvided), errors.Is(err, errInvalidField):
		return fmt.Sprintf("%s: %v", app.MsgInvalidDataProvided, err)
	case errors.Is(err, service.ErrLocalPersistence):
		return fmt.Sprintf("%s: %v", app.MsgLocalPersistence, err)
	case errors.Is(err, service.ErrRemoteUnavailable):
		return app.MsgRemoteUnavailable
	case errors.Is(err, service.ErrRemoteRejected):
		return fmt.Sprintf("%s: %v", app.MsgRemoteRejected, err)
	case errors.Is(err, errClipboard):
		return fmt.Sprintf("%s: %v", app.MsgClipboardUnavailable, err)
	case isConfigError(err):
		return fmt.Sprintf("%s: %v", app.MsgInvalidConfig, err)
	}
	return err.Error()
}

func isConfigError(err error) bool {
	return errors.Is(err, config.ErrInvalidAdapterConfigs) ||
		errors.Is(err, config.ErrInvalidStorageConfigs) ||
		errors.Is(err, config.ErrInvalidAppConfigs) ||
		errors.Is(err, config.ErrInvalidWorkerConfigs) ||
		errors.Is(err, config.ErrInvalidLogConfigs)
}
