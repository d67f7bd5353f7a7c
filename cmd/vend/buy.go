package main

import (
	"fmt"
	"strings"

	"vending/cmd/vend/cmdutil"

	"github.com/spf13/cobra"
)

func buyCmd(flags *cmdutil.MachineFlags) *cobra.Command {
	var coinLabels []string

	cmd := &cobra.Command{
		Use:   "buy <product>",
		Short: "Insert coins and buy one product from a fresh machine",
		Example: `  vend buy Banana --coin £1
  vend buy "Orange Juice" --coin 50p --coin 50p --journal ~/.local/share/vending/journal.db`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, closeJournal, err := openShell(cmd, flags)
			if err != nil {
				return err
			}
			defer closeJournal()

			coins, err := cmdutil.ParseCoins(coinLabels, sh.Machine().Denominations())
			if err != nil {
				return err
			}
			for _, c := range coins {
				sh.Machine().InsertCoin(c)
			}

			name := strings.Join(args, " ")
			res, err := sh.Buy(cmd.Context(), name)
			if err != nil {
				return err
			}
			if res.OK() {
				return nil
			}

			sh.Execute(cmd.Context(), "refund")
			return &exitError{err: fmt.Errorf("purchase %s: %w", name, res.Err())}
		},
	}
	cmd.Flags().StringArrayVar(&coinLabels, "coin", nil, "Coin to insert before buying (repeatable, e.g. £1, 50p)")
	return cmd
}
