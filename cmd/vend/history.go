package main

import (
	"fmt"

	"vending"
	"vending/cmd/vend/cmdutil"
	"vending/cmd/vend/shell"
	"vending/cmd/vend/ui"
	"vending/internal/journal"

	"github.com/spf13/cobra"
)

func historyCmd(flags *cmdutil.MachineFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent purchase attempts from a journal file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if flags.Journal == journal.Memory {
				fmt.Fprintln(out, ui.WarnMsg("The journal is in memory; pass --journal <path> to read a saved one"))
				return nil
			}

			j, err := flags.OpenJournal()
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer j.Close()

			entries, err := j.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No purchases yet")
				return nil
			}
			sum, err := j.Summary(cmd.Context())
			if err != nil {
				return err
			}

			cur := vending.Sterling().Currency()
			fmt.Fprintln(out, shell.HistoryTable(entries, cur))
			fmt.Fprint(out, ui.KeyValues("",
				ui.KV("Vends", fmt.Sprint(sum.Vends)),
				ui.KV("Failures", fmt.Sprint(sum.Failures)),
				ui.KV("Revenue", cur.Format(sum.Revenue)),
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries to show")
	return cmd
}
