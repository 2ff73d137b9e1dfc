package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/aicalc/internal/application"
	"github.com/spf13/cobra"
)

func newEvalCmd(app *app) *cobra.Command {
	var approxPlaceholders bool
	var asJSON bool
	var exportPath string
	var exportFormat string

	cmd := &cobra.Command{
		Use:   "eval <expression> [expression...]",
		Short: "Evaluate arithmetic expressions and log the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.newService(cmd.Context(), approxPlaceholders)

			type evalResult struct {
				Input  string `json:"input"`
				Result string `json:"result"`
			}

			results := make([]evalResult, 0, len(args))
			for _, expression := range args {
				svc.Clear()
				svc.AppendToken(expression)

				result, err := svc.Evaluate(cmd.Context())
				if err != nil {
					return err
				}
				results = append(results, evalResult{Input: expression, Result: result})
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), r.Result); err != nil {
						return err
					}
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

	cmd.Flags().BoolVar(&approxPlaceholders, "approx-placeholders", false, "Substitute 1 for unresolved placeholder tokens instead of failing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().StringVar(&exportPath, "export", "", "Export the calculation log to this path after evaluating")
	cmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv|xlsx)")

	return cmd
}
