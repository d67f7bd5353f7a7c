package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"vending"
	"vending/cmd/vend/ui"
	"vending/internal/journal"
	"vending/internal/telemetry"
	"vending/machine"

	"go.opentelemetry.io/otel/attribute"
)

const historyLimit = 10

type command struct {
	name  string
	usage string
	help  func(s *Shell) string
	run   func(s *Shell, op *telemetry.Operation, args []string) (exit bool, err error)
}

func text(help string) func(*Shell) string {
	return func(*Shell) string { return help }
}

// commands is in the order help lists them.
var commands []command

func init() {
	commands = []command{
		{name: "balance", help: text("Output Balance"), run: (*Shell).balance},
		{name: "insert", usage: "insert <x>", help: insertHelp, run: (*Shell).insert},
		{name: "stock", help: text("Display current stock"), run: (*Shell).stock},
		{name: "change", help: text("Display current change in machine"), run: (*Shell).change},
		{name: "purchase", usage: "purchase <x>", help: text("Attempt to purchase a product (case insensitive)"), run: (*Shell).purchase},
		{name: "menu", help: text("Pick a product to purchase"), run: (*Shell).menu},
		{name: "refund", help: text("Return the inserted coins"), run: (*Shell).refund},
		{name: "reload", usage: "reload <x>", help: text("Reload vending machine back to initial values (options: products, change)"), run: (*Shell).reload},
		{name: "history", help: text("Display recent purchase attempts"), run: (*Shell).history},
		{name: "sales", help: text("Display sales totals"), run: (*Shell).sales},
		{name: "help", help: text("Display these options"), run: (*Shell).help},
		{name: "clear", help: text("Clear history"), run: (*Shell).clear},
		{name: "exit", help: text("Close CLI"), run: (*Shell).exit},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func insertHelp(s *Shell) string {
	return fmt.Sprintf("Insert Coin (options: %s)", strings.Join(s.machine.Denominations().Labels(), ", "))
}

func (s *Shell) balance(*telemetry.Operation, []string) (bool, error) {
	s.printBalance()
	return false, nil
}

func (s *Shell) printBalance() {
	fmt.Fprintf(s.out, "Current Balance: %s\n", s.format(s.machine.Balance()))
}

func (s *Shell) insert(op *telemetry.Operation, args []string) (bool, error) {
	input := ""
	if len(args) > 0 {
		input = args[0]
	}
	op.SetAttributes(attribute.String(telemetry.CoinKey, input))

	coin, ok := s.machine.Denominations().Parse(input)
	if !ok || !s.machine.InsertCoin(coin) {
		op.Reject("invalid_coin")
		fmt.Fprintln(s.out, ui.ErrorMsg("Invalid argument %s", input))
		return false, nil
	}

	op.SetAttributes(attribute.Int(telemetry.BalanceKey, s.machine.Balance()))
	fmt.Fprintln(s.out, "Coin Inserted")
	s.printBalance()
	return false, nil
}

func (s *Shell) stock(*telemetry.Operation, []string) (bool, error) {
	s.printStock()
	return false, nil
}

func (s *Shell) printStock() {
	fmt.Fprintln(s.out, ui.Heading("Current Stock"))
	lines := GroupStock(s.machine.Stock())
	if len(lines) == 0 {
		fmt.Fprintln(s.out, "No products in stock")
		return
	}
	for _, l := range lines {
		fmt.Fprintf(s.out, "%s x %d @ %s\n", l.Name, l.Quantity, s.format(l.Price))
	}
}

func (s *Shell) change(*telemetry.Operation, []string) (bool, error) {
	s.printChange()
	return false, nil
}

func (s *Shell) printChange() {
	fmt.Fprintln(s.out, ui.Heading("Current Change"))
	stacks := GroupCoins(s.machine.Change(), s.machine.Denominations())
	if len(stacks) == 0 {
		fmt.Fprintln(s.out, "No change available")
		return
	}
	for _, st := range stacks {
		fmt.Fprintf(s.out, "%s x %d\n", st.Label, st.Quantity)
	}
}

func (s *Shell) purchase(op *telemetry.Operation, args []string) (bool, error) {
	name := strings.Join(args, " ")
	if name == "" && s.interactive {
		var names []string
		for _, l := range GroupStock(s.machine.Stock()) {
			if !slices.Contains(names, l.Name) {
				names = append(names, l.Name)
			}
		}
		answer, err := s.ask("Which product?", names)
		if errors.Is(err, ui.ErrCancelled) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		name = answer
	}
	if strings.TrimSpace(name) == "" {
		op.Reject("missing_product")
		fmt.Fprintln(s.out, ui.ErrorMsg("Invalid argument %s", name))
		return false, nil
	}
	return false, s.vend(op, name)
}

// Buy attempts a purchase of name outside the command loop, printing the
// outcome like the purchase command does.
func (s *Shell) Buy(ctx context.Context, name string) (res machine.PurchaseResult, err error) {
	op := telemetry.Start(ctx, s.tracer, "purchase")
	defer func() { op.End(err) }()
	return s.attempt(op, name)
}

func (s *Shell) vend(op *telemetry.Operation, name string) error {
	_, err := s.attempt(op, name)
	return err
}

// attempt tries the purchase, records it and prints the outcome. Only a
// journal failure is returned as an error; a refused purchase is an outcome.
func (s *Shell) attempt(op *telemetry.Operation, name string) (machine.PurchaseResult, error) {
	tendered := s.machine.Balance()
	op.SetAttributes(
		attribute.String(telemetry.ProductKey, name),
		attribute.Int(telemetry.BalanceKey, tendered),
	)

	res := s.machine.Purchase(name)
	slog.Debug("Vend attempted.", "product", name, "outcome", res.Reason().String(), "balance", tendered)

	if res.OK() {
		op.SetAttributes(
			attribute.String(telemetry.OutcomeKey, res.Reason().String()),
			attribute.Int(telemetry.PriceKey, res.Product().Price),
			attribute.Int(telemetry.ChangeKey, res.TotalChange()),
		)
		fmt.Fprintf(s.out, "%s vended\n", res.VendedProductName())
		if res.HasChange() {
			fmt.Fprintf(s.out, "%s is dispensed\n", s.format(res.TotalChange()))
			fmt.Fprintf(s.out, "It consists of: %s\n", strings.Join(res.ChangeLabels(), ", "))
		} else {
			fmt.Fprintln(s.out, "No change is dispensed")
		}
	} else {
		op.Reject(res.Reason().String())
		fmt.Fprintln(s.out, ui.ErrorMsg("%s", res.Reason().Message()))
	}

	return res, s.record(op, name, tendered, res)
}

func (s *Shell) record(op *telemetry.Operation, name string, tendered int, res machine.PurchaseResult) error {
	if s.journal == nil {
		return nil
	}
	e := journal.Entry{
		Product:  name,
		Outcome:  res.Reason().String(),
		Tendered: tendered,
	}
	if res.OK() {
		e.Outcome = journal.OutcomeOK
		e.Product = res.VendedProductName()
		e.Price = res.Product().Price
		e.Change = res.TotalChange()
		e.Coins = res.ChangeLabels()
	}
	if _, err := s.journal.Record(op.Context(), e); err != nil {
		return err
	}
	return nil
}

func (s *Shell) menu(op *telemetry.Operation, _ []string) (bool, error) {
	lines := MenuLines(s.machine.Stock())
	if len(lines) == 0 {
		fmt.Fprintln(s.out, "No products in stock")
		return false, nil
	}

	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{l.Name, s.format(l.Price), fmt.Sprint(l.Quantity)})
	}
	idx, err := s.pick(s.in, s.out, []string{"PRODUCT", "PRICE", "LEFT"}, rows)
	if err != nil {
		return false, err
	}
	if idx < 0 || idx >= len(lines) {
		return false, nil
	}
	return false, s.vend(op, lines[idx].Name)
}

func (s *Shell) refund(op *telemetry.Operation, _ []string) (bool, error) {
	coins := s.machine.Refund()
	if len(coins) == 0 {
		fmt.Fprintln(s.out, "No coins to refund")
		return false, nil
	}

	slices.SortFunc(coins, func(a, b vending.Coin) int { return b.Compare(a) })
	denoms := s.machine.Denominations()
	labels := make([]string, 0, len(coins))
	total := 0
	for _, c := range coins {
		labels = append(labels, denoms.Label(c))
		total += c.Value()
	}
	op.SetAttributes(attribute.Int(telemetry.ChangeKey, total))
	fmt.Fprintf(s.out, "%s is refunded\n", s.format(total))
	fmt.Fprintf(s.out, "It consists of: %s\n", strings.Join(labels, ", "))
	return false, nil
}

func (s *Shell) reload(op *telemetry.Operation, args []string) (bool, error) {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	op.SetAttributes(attribute.String("vending.reload", target))

	switch target {
	case "products":
		s.machine.ResetStock(s.cfg.Products())
		fmt.Fprintln(s.out, "Products reloaded back to initial contents")
	case "change":
		s.machine.ResetChange(s.cfg.Coins(s.machine.Denominations()))
		fmt.Fprintln(s.out, "Change reloaded back to initial contents")
	default:
		s.invalidInput()
	}
	return false, nil
}

func (s *Shell) history(op *telemetry.Operation, _ []string) (bool, error) {
	if s.journal == nil {
		fmt.Fprintln(s.out, ui.WarnMsg("No journal configured"))
		return false, nil
	}
	entries, err := s.journal.Recent(op.Context(), historyLimit)
	if err != nil {
		return false, err
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No purchases yet")
		return false, nil
	}
	fmt.Fprintln(s.out, HistoryTable(entries, s.machine.Denominations().Currency()))
	return false, nil
}

func (s *Shell) sales(op *telemetry.Operation, _ []string) (bool, error) {
	if s.journal == nil {
		fmt.Fprintln(s.out, ui.WarnMsg("No journal configured"))
		return false, nil
	}
	sum, err := s.journal.Summary(op.Context())
	if err != nil {
		return false, err
	}
	fmt.Fprint(s.out, ui.KeyValues("",
		ui.KV("Vends", fmt.Sprint(sum.Vends)),
		ui.KV("Failures", fmt.Sprint(sum.Failures)),
		ui.KV("Revenue", s.format(sum.Revenue)),
	))
	return false, nil
}

func (s *Shell) help(*telemetry.Operation, []string) (bool, error) {
	s.printOptions()
	return false, nil
}

func (s *Shell) printOptions() {
	fmt.Fprintln(s.out, ui.Heading("Available Options"))

	width := 0
	for _, c := range commands {
		width = max(width, len(c.label())+1)
	}
	for _, c := range commands {
		fmt.Fprintf(s.out, "%-*s %s\n", width, c.label()+":", c.help(s))
	}
}

func (c command) label() string {
	if c.usage != "" {
		return c.usage
	}
	return c.name
}

func (s *Shell) clear(*telemetry.Operation, []string) (bool, error) {
	s.clearScreen()
	s.welcome()
	return false, nil
}

func (s *Shell) exit(op *telemetry.Operation, _ []string) (bool, error) {
	balance := s.machine.Balance()
	op.SetAttributes(attribute.Int(telemetry.BalanceKey, balance))
	if balance == 0 || !s.interactive {
		return true, nil
	}

	ok, err := s.confirm(fmt.Sprintf("%s is still inserted. Exit anyway?", s.format(balance)))
	if errors.Is(err, ui.ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}
