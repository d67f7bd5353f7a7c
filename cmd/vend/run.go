package main

import (
	"fmt"

	"vending"
	"vending/cmd/vend/cmdutil"
	"vending/cmd/vend/shell"

	"github.com/spf13/cobra"
)

func runCmd(flags *cmdutil.MachineFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the vending shell (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, flags)
		},
	}
}

func runShell(cmd *cobra.Command, flags *cmdutil.MachineFlags) error {
	sh, closeJournal, err := openShell(cmd, flags)
	if err != nil {
		return err
	}
	defer closeJournal()

	return sh.Run(cmd.Context(), cmd.InOrStdin())
}

// openShell builds a freshly loaded machine and a shell over it that
// journals to the configured store.
func openShell(cmd *cobra.Command, flags *cmdutil.MachineFlags) (*shell.Shell, func(), error) {
	denoms := vending.Sterling()
	cfg, err := flags.LoadConfig(denoms)
	if err != nil {
		return nil, nil, err
	}
	j, err := flags.OpenJournal()
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}

	sh := shell.New(cmdutil.NewMachine(cfg, denoms), cfg,
		shell.WithJournal(j),
		shell.WithOutput(cmd.OutOrStdout()),
	)
	return sh, func() { _ = j.Close() }, nil
}
