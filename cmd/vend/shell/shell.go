// Package shell is the line-oriented front end of a vending machine.
//
// A Shell reads one command per line, dispatches it to the machine and
// prints the outcome. Every command runs inside a trace span and every
// purchase attempt lands in the journal.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"vending/cmd/vend/ui"
	"vending/config"
	"vending/internal/journal"
	"vending/internal/telemetry"
	"vending/machine"

	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel/trace"
)

const prompt = "> "

// Shell drives one Machine from text commands.
type Shell struct {
	machine *machine.Machine
	cfg     *config.Config
	journal *journal.Store
	tracer  trace.Tracer
	out     io.Writer
	in      io.Reader

	interactive bool
	confirm     func(question string) (bool, error)
	ask         func(label string, suggestions []string) (string, error)
	pick        func(in io.Reader, w io.Writer, headers []string, rows [][]string) (int, error)
}

// Option configures a Shell.
type Option func(*Shell)

// WithJournal records purchase attempts in j.
func WithJournal(j *journal.Store) Option {
	return func(s *Shell) { s.journal = j }
}

// WithTracer sets the tracer for command spans. The global tracer is used
// otherwise.
func WithTracer(t trace.Tracer) Option {
	return func(s *Shell) { s.tracer = t }
}

// WithOutput redirects output away from stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) { s.out = w }
}

// New returns a shell over m. cfg is the definition reload restores.
func New(m *machine.Machine, cfg *config.Config, opts ...Option) *Shell {
	s := &Shell{
		machine:     m,
		cfg:         cfg,
		out:         os.Stdout,
		interactive: ui.IsInteractive(),
		pick:        ui.Pick,
	}
	s.confirm = func(question string) (bool, error) {
		return ui.Confirm(s.in, question, "")
	}
	s.ask = func(label string, suggestions []string) (string, error) {
		return ui.Prompt(s.in, label, suggestions, "use purchase <x>")
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Machine returns the machine the shell drives.
func (s *Shell) Machine() *machine.Machine {
	return s.machine
}

// Run prints the welcome screen and executes lines from in until exit, end
// of input or ctx is done. Cancellation prints "Exiting".
//
// in is read only between commands. Prompts and pickers opened by a
// command read from in themselves while the shell waits.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	s.in = in
	defer func() { s.in = nil }()

	s.welcome()
	fmt.Fprint(s.out, prompt)

	lines := newLineReader(ctx, in)
	for {
		line, err := lines.next(ctx)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			fmt.Fprintln(s.out, "\nExiting")
			return nil
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)
			return nil
		case err != nil:
			return fmt.Errorf("read command: %w", err)
		}

		if s.Execute(ctx, line) {
			return nil
		}
		fmt.Fprint(s.out, prompt)
	}
}

// lineReader scans one line per request. The scanning goroutine only
// touches the input between a next call and its result, so it never races
// a prompt for keystrokes.
type lineReader struct {
	requests chan struct{}
	results  chan scanResult
}

type scanResult struct {
	line string
	err  error
}

func newLineReader(ctx context.Context, in io.Reader) *lineReader {
	r := &lineReader{
		requests: make(chan struct{}),
		results:  make(chan scanResult),
	}
	go func() {
		scanner := bufio.NewScanner(in)
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.requests:
			}

			res := scanResult{err: io.EOF}
			if scanner.Scan() {
				res = scanResult{line: scanner.Text()}
			} else if err := scanner.Err(); err != nil {
				res.err = err
			}

			select {
			case r.results <- res:
			case <-ctx.Done():
				return
			}
			if res.err != nil {
				return
			}
		}
	}()
	return r
}

// next returns the next line, io.EOF at end of input, or ctx's error once
// ctx is done.
func (r *lineReader) next(ctx context.Context) (string, error) {
	select {
	case r.requests <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case res := <-r.results:
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Execute runs a single command line and reports whether the shell should
// exit.
func (s *Shell) Execute(ctx context.Context, line string) (exit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		s.invalidInput()
		return false
	}

	cmd, ok := lookup(fields[0])
	if !ok {
		slog.Debug("Unknown shell command.", "input", line)
		s.invalidInput()
		return false
	}

	op := telemetry.Start(ctx, s.tracer, cmd.name)
	exit, err := cmd.run(s, op, fields[1:])
	op.End(err)
	if err != nil {
		slog.Warn("Shell command failed.", "command", cmd.name, "err", err)
		fmt.Fprintln(s.out, ui.ErrorMsg("%v", err))
	}
	return exit
}

func (s *Shell) welcome() {
	fmt.Fprintln(s.out, ui.Bold("Welcome to Vending Machine"))
	fmt.Fprintln(s.out)
	s.printStock()
	fmt.Fprintln(s.out)
	s.printChange()
	fmt.Fprintln(s.out)
	s.printOptions()
}

func (s *Shell) clearScreen() {
	if !s.interactive {
		return
	}
	termenv.NewOutput(s.out).ClearScreen()
}

func (s *Shell) invalidInput() {
	fmt.Fprintln(s.out, ui.ErrorMsg("Invalid Input"))
}

func (s *Shell) format(amount int) string {
	return s.machine.Denominations().Currency().Format(amount)
}
