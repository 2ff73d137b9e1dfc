package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/aicalc/internal/application"
	"github.com/spf13/cobra"
)

func newExplainCmd(app *app) *cobra.Command {
	var asJSON bool
	var exportPath string
	var exportFormat string

	cmd := &cobra.Command{
		Use:     "explain <expression>",
		Aliases: []string{"aicse"},
		Short:   "Request an AI critical solution extract for an expression",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.newService(cmd.Context(), false)
			svc.AppendToken(args[0])

			var narrative string
			explain := func(ctx context.Context) error {
				var err error
				narrative, err = svc.Explain(ctx)
				return err
			}

			if asJSON {
				if err := explain(cmd.Context()); err != nil {
					return err
				}
			} else {
				if err := runExplainSpinner(cmd.Context(), cmd.ErrOrStderr(), explain); err != nil {
					return err
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(map[string]string{
					"input":     args[0],
					"narrative": narrative,
				}); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), narrative); err != nil {
					return err
				}
			}

			if exportPath == "" {
				return nil
			}

			format, err := application.ParseExportFormat(exportFormat)
			if err != nil {
				return err
			}

			count, err := svc.Export(cmd.Context(), exportPath, format)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "exported %d record(s) to %s\n", count, exportPath)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().StringVar(&exportPath, "export", "", "Export the calculation log to this path after the explanation")
	cmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv|xlsx)")

	return cmd
}
