package vending

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Coin is a single piece of currency worth Value minor units.
// The zero Coin is the "not a coin" value returned by Denominations.Parse
// for unrecognised input; it is never valid.
type Coin struct {
	value int
}

// NotACoin is returned by the label parser when input names no denomination.
var NotACoin = Coin{}

// NewCoin never fails. Whether the coin is accepted is decided by the
// Denominations it is checked against.
func NewCoin(value int) Coin {
	return Coin{value: value}
}

func (c Coin) Value() int { return c.value }

// IsZero reports whether c is the not-a-coin sentinel.
func (c Coin) IsZero() bool { return c.value == 0 }

// Compare orders coins by value.
func (c Coin) Compare(other Coin) int {
	return cmp.Compare(c.value, other.value)
}

// SumCoins returns the total value of coins in minor units.
func SumCoins(coins []Coin) int {
	total := 0
	for _, c := range coins {
		total += c.value
	}
	return total
}

// Denomination pairs a printed label with a face value.
type Denomination struct {
	Label string
	Value int
}

// Denominations is the closed set of coins a machine accepts. It is built
// once and never mutated; copies share the same read-only tables.
type Denominations struct {
	currency Currency
	labels   map[int]string
	values   map[string]int // keyed by lowercased label
	desc     []Coin
}

// NewDenominations validates and indexes a denomination table.
func NewDenominations(cur Currency, ds ...Denomination) (Denominations, error) {
	if len(ds) == 0 {
		return Denominations{}, fmt.Errorf("denomination table is empty")
	}
	d := Denominations{
		currency: cur,
		labels:   make(map[int]string, len(ds)),
		values:   make(map[string]int, len(ds)),
		desc:     make([]Coin, 0, len(ds)),
	}
	for _, den := range ds {
		label := strings.TrimSpace(den.Label)
		if label == "" {
			return Denominations{}, fmt.Errorf("denomination %d has an empty label", den.Value)
		}
		if den.Value <= 0 {
			return Denominations{}, fmt.Errorf("denomination %q has non-positive value %d", label, den.Value)
		}
		if _, dup := d.labels[den.Value]; dup {
			return Denominations{}, fmt.Errorf("duplicate denomination value %d", den.Value)
		}
		key := strings.ToLower(label)
		if _, dup := d.values[key]; dup {
			return Denominations{}, fmt.Errorf("duplicate denomination label %q", label)
		}
		d.labels[den.Value] = label
		d.values[key] = den.Value
		d.desc = append(d.desc, NewCoin(den.Value))
	}
	slices.SortFunc(d.desc, func(a, b Coin) int { return b.Compare(a) })
	return d, nil
}

// Sterling is the UK coin set: £2, £1, 50p, 20p, 10p, 5p, 2p and 1p.
// Each denomination is at least double the next smaller one, so greedy
// change selection is exact for it.
func Sterling() Denominations {
	d, err := NewDenominations(GBP,
		Denomination{Label: "£2", Value: 200},
		Denomination{Label: "£1", Value: 100},
		Denomination{Label: "50p", Value: 50},
		Denomination{Label: "20p", Value: 20},
		Denomination{Label: "10p", Value: 10},
		Denomination{Label: "5p", Value: 5},
		Denomination{Label: "2p", Value: 2},
		Denomination{Label: "1p", Value: 1},
	)
	if err != nil {
		panic("sterling denominations: " + err.Error())
	}
	return d
}

// IsValid reports whether c is one of the accepted denominations.
func (d Denominations) IsValid(c Coin) bool {
	_, ok := d.labels[c.value]
	return ok
}

// Label returns the printed label for c, or "" when c is not accepted.
func (d Denominations) Label(c Coin) string {
	return d.labels[c.value]
}

// Labels returns every denomination label, largest first.
func (d Denominations) Labels() []string {
	out := make([]string, 0, len(d.desc))
	for _, c := range d.desc {
		out = append(out, d.labels[c.value])
	}
	return out
}

// Descending returns one coin of each denomination, largest first.
func (d Denominations) Descending() []Coin {
	return slices.Clone(d.desc)
}

func (d Denominations) Currency() Currency { return d.currency }

// Parse maps a human-entered label to a coin. It accepts the exact label in
// any case ("50p", "£1"), a symbol-prefixed major amount ("£0.50") and a
// suffix minor amount ("100p"). Input naming no accepted denomination
// yields NotACoin and false.
func (d Denominations) Parse(s string) (Coin, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotACoin, false
	}
	if v, ok := d.values[strings.ToLower(s)]; ok {
		return NewCoin(v), true
	}

	value, ok := d.currency.ParseAmount(s)
	if !ok {
		return NotACoin, false
	}
	c := NewCoin(value)
	if !d.IsValid(c) {
		return NotACoin, false
	}
	return c, true
}
