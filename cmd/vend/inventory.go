package main

import (
	"fmt"

	"vending"
	"vending/cmd/vend/cmdutil"
	"vending/cmd/vend/shell"
	"vending/cmd/vend/ui"

	"github.com/spf13/cobra"
)

func stockCmd(flags *cmdutil.MachineFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Show the products a fresh machine is loaded with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			denoms := vending.Sterling()
			cfg, err := flags.LoadConfig(denoms)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			products := cfg.Products()
			if len(products) == 0 {
				fmt.Fprintln(out, ui.WarnMsg("No products in %s", cfg.Source))
				return nil
			}
			fmt.Fprintln(out, shell.StockTable(products, denoms.Currency()))
			return nil
		},
	}
}

func changeCmd(flags *cmdutil.MachineFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "change",
		Short: "Show the change reserve a fresh machine is loaded with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			denoms := vending.Sterling()
			cfg, err := flags.LoadConfig(denoms)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			coins := cfg.Coins(denoms)
			if len(coins) == 0 {
				fmt.Fprintln(out, ui.WarnMsg("No change in %s", cfg.Source))
				return nil
			}
			fmt.Fprintln(out, shell.ChangeTable(coins, denoms))
			fmt.Fprint(out, ui.KeyValues("",
				ui.KV("Coins", fmt.Sprint(len(coins))),
				ui.KV("Total", denoms.Currency().Format(vending.SumCoins(coins))),
			))
			return nil
		},
	}
}
