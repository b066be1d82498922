package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/proposalgen/proposal-backend/internal/repository"
)

var listUserID int64

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List proposals of a user",
	Long: `List proposals owned by a user, newest first.

Example:
  proposalctl list --user 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listUserID <= 0 {
			return fmt.Errorf("--user must be a positive id")
		}

		_, conn, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		items, err := repository.NewProposalRepository(conn).ListByUser(cmd.Context(), listUserID)
		if err != nil {
			return fmt.Errorf("list proposals: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(out, "No proposals found.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-40s  %-20s  %s\n", "ID", "TITLE", "TYPE", "GENERATED")
		fmt.Fprintln(out, strings.Repeat("-", 90))
		for _, p := range items {
			fmt.Fprintf(out, "%-8d  %-40s  %-20s  %s\n",
				p.ID,
				p.Title,
				p.ProjectType,
				humanize.Time(p.GeneratedAt),
			)
		}
		fmt.Fprintf(out, "\nTotal: %d proposal(s)\n", len(items))

		return nil
	},
}

func init() {
	listCmd.Flags().Int64Var(&listUserID, "user", 0, "owner user id")
	rootCmd.AddCommand(listCmd)
}
