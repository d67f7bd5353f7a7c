package machine

import (
	"maps"
	"slices"

	"vending"
)

// purse is a multiset of coins keyed by denomination. Coins of equal value
// are interchangeable, so removal never has to pick between duplicates.
type purse map[vending.Coin]int

func purseOf(coins []vending.Coin) purse {
	p := make(purse, len(coins))
	for _, c := range coins {
		p[c]++
	}
	return p
}

func (p purse) clone() purse {
	return maps.Clone(p)
}

func (p purse) add(coins ...vending.Coin) {
	for _, c := range coins {
		p[c]++
	}
}

// remove takes coins out of p. It reports false and leaves p untouched if
// any coin is missing.
func (p purse) remove(coins ...vending.Coin) bool {
	need := purseOf(coins)
	for c, n := range need {
		if p[c] < n {
			return false
		}
	}
	for c, n := range need {
		if p[c] == n {
			delete(p, c)
			continue
		}
		p[c] -= n
	}
	return true
}

func (p purse) total() int {
	total := 0
	for c, n := range p {
		total += c.Value() * n
	}
	return total
}

func (p purse) count() int {
	n := 0
	for _, q := range p {
		n += q
	}
	return n
}

// denominations returns the distinct coins held, largest first.
func (p purse) denominations() []vending.Coin {
	keys := slices.Collect(maps.Keys(p))
	slices.SortFunc(keys, func(a, b vending.Coin) int { return b.Compare(a) })
	return keys
}

// coins expands p into individual coins, largest first.
func (p purse) coins() []vending.Coin {
	out := make([]vending.Coin, 0, p.count())
	for _, c := range p.denominations() {
		for range p[c] {
			out = append(out, c)
		}
	}
	return out
}
