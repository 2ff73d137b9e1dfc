package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newConstCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "const",
		Short: "Inspect the constant registry",
	}

	cmd.AddCommand(newConstListCmd(app))

	return cmd
}

func newConstListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registry constants and their insertion tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			constants := app.registry.All()

			if asJSON {
				type entry struct {
					Label    string `json:"label"`
					Token    string `json:"token"`
					Symbolic bool   `json:"symbolic"`
				}

				entries := make([]entry, 0, len(constants))
				for _, constant := range constants {
					entries = append(entries, entry{
						Label:    constant.Label,
						Token:    constant.Value.Token(),
						Symbolic: constant.Value.IsSymbolic(),
					})
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			for _, constant := range constants {
				kind := "numeric"
				if constant.Value.IsSymbolic() {
					kind = "symbolic"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-10s %s\n", constant.Label, kind, constant.Value.Token()); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
