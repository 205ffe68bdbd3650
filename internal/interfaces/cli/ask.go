package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swarakshak/vidhaan/pkg/client"
)

// NewAskCmd creates the ask command.
func NewAskCmd() *cobra.Command {
	var sessionID string
	var clearSession bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a legal question under Indian law",
		Long:  "Submits a legal question to a running vidhaan server and prints the\nanswer with its verdict, citations, and confidence.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if cliCtx.Client == nil {
				return fmt.Errorf("no API server configured; pass --server or start one with 'vidhaan serve'")
			}

			if clearSession && sessionID != "" {
				if err := cliCtx.Client.ClearSession(cmd.Context(), sessionID); err != nil {
					return err
				}
			}

			resp, err := cliCtx.Client.Ask(cmd.Context(), client.AskRequest{
				Query:     strings.Join(args, " "),
				SessionID: sessionID,
			})
			if err != nil {
				return err
			}

			if cliCtx.OutputFormat == "json" {
				return PrintResult(cmd, resp)
			}
			printAnswer(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id for multi-turn context")
	cmd.Flags().BoolVar(&clearSession, "new", false, "clear the session before asking")
	return cmd
}

func printAnswer(cmd *cobra.Command, resp *client.AskResponse) {
	out := cmd.OutOrStdout()

	if resp.IsRefused() || resp.Status == "no_authoritative_source" {
		fmt.Fprintf(out, "%s\n", resp.Reason)
		if resp.AnalysisUser != "" {
			fmt.Fprintf(out, "\n%s\n", resp.AnalysisUser)
		}
		return
	}

	if resp.AnalysisUser != "" {
		fmt.Fprintln(out, resp.AnalysisUser)
	}
	if resp.LawBasis != "" {
		fmt.Fprintf(out, "\nLaw basis: %s\n", resp.LawBasis)
	}
	if resp.RiskLevel != "" {
		fmt.Fprintf(out, "Risk level: %s\n", resp.RiskLevel)
	}
	fmt.Fprintf(out, "Confidence: %.2f\n", resp.Confidence)

	if len(resp.Citations) > 0 {
		fmt.Fprintln(out, "\nCitations:")
		for _, c := range resp.Citations {
			name := c.Identifier
			if c.Statute != "" {
				name = c.Statute + ", " + c.Identifier
			}
			fmt.Fprintf(out, "  - [%s] %s (relevance %.2f)\n", c.Type, name, c.RelevanceScore)
		}
	}
}
