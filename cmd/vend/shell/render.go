package shell

import (
	"fmt"
	"slices"
	"strings"

	"vending"
	"vending/cmd/vend/ui"
	"vending/internal/journal"
)

// StockLine is a run of identical products.
type StockLine struct {
	Name     string
	Price    int
	Quantity int
}

// GroupStock counts identical products, keeping first-seen order.
func GroupStock(products []vending.Product) []StockLine {
	var lines []StockLine
	index := make(map[vending.Product]int)
	for _, p := range products {
		if i, ok := index[p]; ok {
			lines[i].Quantity++
			continue
		}
		index[p] = len(lines)
		lines = append(lines, StockLine{Name: p.Name, Price: p.Price, Quantity: 1})
	}
	return lines
}

// MenuLines merges products that answer to the same name into one line
// priced at the cheapest unit, which is the one a purchase by that name
// vends. Quantity counts every unit under the name.
func MenuLines(products []vending.Product) []StockLine {
	var lines []StockLine
	for _, l := range GroupStock(products) {
		i := slices.IndexFunc(lines, func(m StockLine) bool {
			return vending.NewProduct(m.Name, m.Price).MatchesName(l.Name)
		})
		if i < 0 {
			lines = append(lines, l)
			continue
		}
		lines[i].Price = min(lines[i].Price, l.Price)
		lines[i].Quantity += l.Quantity
	}
	return lines
}

// CoinStack is a count of coins of one denomination.
type CoinStack struct {
	Label    string
	Value    int
	Quantity int
}

// GroupCoins counts coins per denomination, largest first.
func GroupCoins(coins []vending.Coin, denoms vending.Denominations) []CoinStack {
	counts := make(map[vending.Coin]int, len(coins))
	for _, c := range coins {
		counts[c]++
	}
	var stacks []CoinStack
	for _, c := range denoms.Descending() {
		if n := counts[c]; n > 0 {
			stacks = append(stacks, CoinStack{Label: denoms.Label(c), Value: c.Value(), Quantity: n})
		}
	}
	return stacks
}

// StockTable renders products as a table.
func StockTable(products []vending.Product, cur vending.Currency) string {
	var rows [][]string
	for _, l := range GroupStock(products) {
		rows = append(rows, []string{l.Name, cur.Format(l.Price), fmt.Sprint(l.Quantity)})
	}
	return ui.Table([]string{"PRODUCT", "PRICE", "QUANTITY"}, rows)
}

// ChangeTable renders coins as a table with a value column per denomination.
func ChangeTable(coins []vending.Coin, denoms vending.Denominations) string {
	var rows [][]string
	for _, st := range GroupCoins(coins, denoms) {
		rows = append(rows, []string{
			st.Label,
			fmt.Sprint(st.Quantity),
			denoms.Currency().Format(st.Value * st.Quantity),
		})
	}
	return ui.Table([]string{"COIN", "QUANTITY", "VALUE"}, rows)
}

// HistoryTable renders journal entries, newest first as given.
func HistoryTable(entries []journal.Entry, cur vending.Currency) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		price, change := "-", "-"
		if e.OK() {
			price = cur.Format(e.Price)
			change = cur.Format(e.Change)
			if len(e.Coins) > 0 {
				change += " (" + strings.Join(e.Coins, ", ") + ")"
			}
		}
		rows = append(rows, []string{
			e.At.Local().Format("2006-01-02 15:04:05"),
			e.Product,
			e.Outcome,
			cur.Format(e.Tendered),
			price,
			change,
		})
	}
	return ui.Table([]string{"TIME", "PRODUCT", "OUTCOME", "TENDERED", "PRICE", "CHANGE"}, rows)
}
