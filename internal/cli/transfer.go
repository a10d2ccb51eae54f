package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-field-survey/internal/client"
	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/MKhiriev/go-field-survey/internal/service"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

const stdioPath = "-"

var errClipboard = errors.New("clipboard")

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func newImportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Import observations from a JSON file",
		Long: `Import accepts a JSON array or a single object. Each element may be a
stored envelope or a flat legacy document. Imported records are pushed on the
next sync.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != stdioPath {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open import file: %w", err)
				}
				defer f.Close()
				r = f
			}

			return s.withApp(cmd, func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error {
				report, err := a.Services().TransferService.Import(ctx, r)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "imported %d, rejected %d\n", report.Imported, len(report.Rejected))
				for _, rej := range report.Rejected {
					fmt.Fprintf(out, "  #%d: %s\n", rej.Index, rej.Reason)
				}
				return nil
			})
		},
	}
}

func newExportCmd(s *session) *cobra.Command {
	var (
		outPath string
		toClip  bool
	)

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export all observations, or one, as JSON",
		Long: `Export writes an indented JSON file into --export-dir, named after the
date and record count (or after the station and date for a single record).
Use --out to choose the path, --out - for stdout, or --clipboard.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(ctx context.Context, cfg *config.ClientConfig, a *client.App) error {
				transfer := a.Services().TransferService
				now := time.Now()

				var (
					buf  bytes.Buffer
					name string
					n    = 1
				)
				if len(args) == 1 {
					o, err := transfer.ExportOne(ctx, args[0], &buf)
					if err != nil {
						return err
					}
					name = service.ObservationFileName(o, now)
				} else {
					var err error
					if n, err = transfer.Export(ctx, &buf); err != nil {
						return err
					}
					name = service.ExportFileName(now, n)
				}

				out := cmd.OutOrStdout()
				switch {
				case toClip:
					if err := writeClipboard(buf.String()); err != nil {
						return fmt.Errorf("%w: %w", errClipboard, err)
					}
					fmt.Fprintf(out, "copied %d observation(s) to the clipboard\n", n)
					return nil
				case outPath == stdioPath:
					_, err := out.Write(buf.Bytes())
					return err
				}

				path := outPath
				if path == "" {
					path = filepath.Join(cfg.App.ExportDir, name)
				}
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return fmt.Errorf("create export dir: %w", err)
				}
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
				fmt.Fprintf(out, "exported %d observation(s) to %s\n", n, path)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&outPath, "out", "o", "", "Output file path, or - for stdout")
	f.BoolVar(&toClip, "clipboard", false, "Copy the JSON to the clipboard instead of writing a file")

	return cmd
}
