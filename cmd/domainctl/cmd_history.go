package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCmdHistory() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:                "history",
		Short:              "List recorded binding runs",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := buildRunsRepository(cmd)
			if err != nil {
				return err
			}
			if runs == nil {
				return fmt.Errorf("run history is disabled (--db-url none)")
			}

			list, err := runs.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(w, "no binding runs recorded")
				return nil
			}
			for _, run := range list {
				line := fmt.Sprintf("%s  %s  %-12s  %s",
					run.StartedAt.Format("2006-01-02 15:04:05"), run.ID, run.State, run.CustomDomain)
				if run.Result != nil && run.Result.FailureReason != "" {
					line += "  (" + run.Result.FailureReason + ")"
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 for all)")

	return cmd
}
