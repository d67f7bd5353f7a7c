package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vending/cmd/vend/cmdutil"
	"vending/cmd/vend/ui"
	"vending/internal/buildinfo"
	"vending/internal/logging"
	"vending/internal/telemetry"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func main() {
	if err := logging.Configure(logging.LevelWarn); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		var exit *exitError
		if !errors.As(err, &exit) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// exitError fails the process without printing; the command already told
// the user what went wrong.
type exitError struct {
	err error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	var (
		flags         cmdutil.MachineFlags
		debug         bool
		trace         bool
		noInteraction bool
		provider      *sdktrace.TracerProvider
	)

	root := &cobra.Command{
		Use:           "vend",
		Short:         "Coin-operated vending machine",
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelWarn
			if debug {
				level = logging.LevelDebug
			}
			if err := logging.Configure(level); err != nil {
				return err
			}
			ui.ConfigureInteraction(noInteraction)

			if trace {
				logger, err := logging.New(cmd.ErrOrStderr(), logging.LevelDebug)
				if err != nil {
					return err
				}
				provider = telemetry.NewLogProvider(logger)
				otel.SetTracerProvider(provider)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if provider == nil {
				return nil
			}
			if err := provider.Shutdown(context.WithoutCancel(cmd.Context())); err != nil {
				return fmt.Errorf("shutdown tracer: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, &flags)
		},
	}

	flags.Bind(root)
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&trace, "trace", false, "Log a trace span for every command")
	root.PersistentFlags().BoolVar(&noInteraction, "no-interaction", false, "Never prompt; plain output")

	root.AddCommand(runCmd(&flags))
	root.AddCommand(stockCmd(&flags))
	root.AddCommand(changeCmd(&flags))
	root.AddCommand(buyCmd(&flags))
	root.AddCommand(historyCmd(&flags))
	return root
}
