package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the explanation endpoint credential",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthRemoveCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the OpenAI API key",
		Long:  "Store the OpenAI API key in the secret store. The OPENAI_API_KEY environment variable always wins over the stored value at read time.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value := strings.TrimSpace(apiKey)
			if value == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
				scanner := bufio.NewScanner(cmd.InOrStdin())
				if !scanner.Scan() {
					if err := scanner.Err(); err != nil {
						return err
					}
					return errors.New("no API key entered")
				}
				value = strings.TrimSpace(scanner.Text())
			}
			if value == "" {
				return errors.New("API key is empty")
			}

			if err := app.secretStore.Put(cmd.Context(), apiKeySecretRef, value); err != nil {
				return fmt.Errorf("store api key: %w", err)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "API key stored.")
			return err
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key value (prompted interactively when omitted)")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored OpenAI API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.secretStore.Delete(cmd.Context(), apiKeySecretRef); err != nil {
				return fmt.Errorf("remove api key: %w", err)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "API key removed.")
			return err
		},
	}
}
