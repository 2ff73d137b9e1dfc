package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	historyrender "github.com/bnema/aicalc/internal/adapters/render/history"
	"github.com/bnema/aicalc/internal/application"
	"github.com/spf13/cobra"
)

const replHelp = `commands:
  <tokens>          append to the current expression
  =                 evaluate the expression
  aicse             request an AI explanation of the expression
  const <label>     insert a registry constant
  consts            list registry constants
  log               show the calculation log
  export <path> [csv|xlsx]
  clear             reset the expression
  help              show this help
  quit              leave the session`

func newReplCmd(app *app) *cobra.Command {
	var approxPlaceholders bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run an interactive calculator session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := app.newService(cmd.Context(), approxPlaceholders)
			return runRepl(cmd, app, svc)
		},
	}

	cmd.Flags().BoolVar(&approxPlaceholders, "approx-placeholders", false, "Substitute 1 for unresolved placeholder tokens instead of failing")

	return cmd
}

// runRepl drives one interactive session. No error is fatal: every failure
// is printed and the loop returns to the prompt.
func runRepl(cmd *cobra.Command, app *app, svc *application.Service) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, "aicalc interactive session. Type 'help' for commands.")

	for {
		fmt.Fprintf(out, "[%s] > ", svc.Expression())
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return scanner.Err()
		case line == "help":
			fmt.Fprintln(out, replHelp)
		case line == "clear":
			svc.Clear()
		case line == "=":
			result, err := svc.Evaluate(cmd.Context())
			if err != nil {
				fmt.Fprintln(errOut, "error:", err)
				continue
			}
			fmt.Fprintln(out, result)
		case line == "aicse":
			runReplExplain(cmd.Context(), out, errOut, svc)
		case line == "consts":
			printConstants(out, svc)
		case strings.HasPrefix(line, "const "):
			label := strings.TrimSpace(strings.TrimPrefix(line, "const "))
			if err := svc.InsertConstant(label); err != nil {
				fmt.Fprintln(errOut, "error:", err)
			}
		case line == "log":
			rendered, err := app.historyRenderer(svc.Records(), historyrender.RenderOptions{NarrativeWidth: 80})
			if err != nil {
				fmt.Fprintln(errOut, "error:", err)
				continue
			}
			fmt.Fprintln(out, rendered)
		case strings.HasPrefix(line, "export "):
			runReplExport(cmd.Context(), out, errOut, svc, line)
		default:
			svc.AppendToken(line)
		}
	}

	return scanner.Err()
}

func runReplExplain(ctx context.Context, out, errOut io.Writer, svc *application.Service) {
	narrative, err := svc.Explain(ctx)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return
	}

	fmt.Fprintln(out, narrative)
}

func runReplExport(ctx context.Context, out, errOut io.Writer, svc *application.Service, line string) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		fmt.Fprintln(errOut, "error: export requires a destination path")
		return
	}

	destination := fields[1]
	format := application.ExportCSV
	if len(fields) > 2 {
		parsed, err := application.ParseExportFormat(fields[2])
		if err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return
		}
		format = parsed
	}

	count, err := svc.Export(ctx, destination, format)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return
	}

	fmt.Fprintf(out, "exported %d record(s) to %s\n", count, destination)
}

func printConstants(out io.Writer, svc *application.Service) {
	for _, constant := range svc.Constants() {
		fmt.Fprintf(out, "%-28s %s\n", constant.Label, constant.Value.Token())
	}
}
