// Package cmdutil holds the flag plumbing and construction shared by the
// vend subcommands.
package cmdutil

import (
	"fmt"
	"log/slog"

	"vending"
	"vending/config"
	"vending/internal/journal"
	"vending/machine"

	"github.com/spf13/cobra"
)

// MachineFlags selects the definition and journal a command works against.
type MachineFlags struct {
	Config  string
	Journal string
}

// Bind registers the flags as persistent flags of cmd.
func (f *MachineFlags) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.Config, "config", "",
		fmt.Sprintf("Stock and change definition (default $%s, then %s)", config.EnvPath, config.Path()))
	cmd.PersistentFlags().StringVar(&f.Journal, "journal", journal.Memory, "Purchase journal database path")
}

// LoadConfig resolves and loads the definition named by the flags.
func (f *MachineFlags) LoadConfig(denoms vending.Denominations) (*config.Config, error) {
	cfg, err := config.Load(config.Resolve(f.Config), denoms)
	if err != nil {
		return nil, err
	}
	slog.Debug("Using machine definition.", "source", cfg.Source)
	return cfg, nil
}

// OpenJournal opens the journal named by the flags.
func (f *MachineFlags) OpenJournal() (*journal.Store, error) {
	return journal.Open(f.Journal)
}

// NewMachine builds a machine loaded with cfg's stock and change.
func NewMachine(cfg *config.Config, denoms vending.Denominations) *machine.Machine {
	return machine.New(denoms,
		machine.WithStock(cfg.Products()),
		machine.WithChange(cfg.Coins(denoms)),
	)
}

// ParseCoins turns coin labels into coins, failing on the first unknown one.
func ParseCoins(labels []string, denoms vending.Denominations) ([]vending.Coin, error) {
	coins := make([]vending.Coin, 0, len(labels))
	for _, label := range labels {
		c, ok := denoms.Parse(label)
		if !ok {
			return nil, fmt.Errorf("invalid coin %q (options: %v)", label, denoms.Labels())
		}
		coins = append(coins, c)
	}
	return coins, nil
}
