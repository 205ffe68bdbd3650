package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swarakshak/vidhaan/pkg/client"
)

// NewClauseCmd creates the clause command.
func NewClauseCmd() *cobra.Command {
	var contractPath string

	cmd := &cobra.Command{
		Use:   "clause [request]",
		Short: "Draft and vet an NDA clause under Indian law",
		Long:  "Asks a running vidhaan server to draft an NDA clause from the request,\nvet it against Indian contract law, and append it to the contract when\napproved.  With --contract the contract file is read and written back.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if cliCtx.Client == nil {
				return fmt.Errorf("no API server configured; pass --server or start one with 'vidhaan serve'")
			}

			req := client.ClauseRequest{Input: strings.Join(args, " ")}
			if contractPath != "" {
				contract, err := readContract(contractPath)
				if err != nil {
					return err
				}
				req.Contract = contract
			}

			resp, err := cliCtx.Client.ProcessClause(cmd.Context(), req)
			if err != nil {
				return err
			}

			if contractPath != "" && resp.Status == "added" && resp.Contract != nil {
				if err := writeContract(contractPath, resp.Contract); err != nil {
					return err
				}
			}

			if cliCtx.OutputFormat == "json" {
				return PrintResult(cmd, resp)
			}
			printClauseResult(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&contractPath, "contract", "f", "", "contract JSON file to append the clause to")
	return cmd
}

func readContract(path string) (*client.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &client.Contract{}, nil
		}
		return nil, fmt.Errorf("read contract: %w", err)
	}
	var contract client.Contract
	if err := json.Unmarshal(data, &contract); err != nil {
		return nil, fmt.Errorf("parse contract %s: %w", path, err)
	}
	return &contract, nil
}

func writeContract(path string, contract *client.Contract) error {
	data, err := json.MarshalIndent(contract, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func printClauseResult(cmd *cobra.Command, resp *client.ClauseResponse) {
	out := cmd.OutOrStdout()

	if resp.Status != "added" {
		fmt.Fprintf(out, "Rejected: %s\n", resp.Reason)
		if resp.Analysis != nil && resp.Analysis.Reason != "" && resp.Analysis.Reason != resp.Reason {
			fmt.Fprintf(out, "Detail: %s\n", resp.Analysis.Reason)
		}
		return
	}

	fmt.Fprintln(out, "Clause approved and added.")
	if resp.Clause != nil {
		fmt.Fprintf(out, "\n%s. %s\n%s\n", resp.Clause.ClauseNumber, resp.Clause.Title, resp.Clause.Text)
	}
	if resp.Analysis != nil {
		fmt.Fprintf(out, "\nValidation: %s (confidence %.2f)\n", resp.Analysis.Status, resp.Analysis.Confidence)
	}
}
