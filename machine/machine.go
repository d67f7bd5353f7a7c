package machine

import (
	"slices"

	"vending"
	"vending/internal/check"
)

// Machine is a single vending machine.
type Machine struct {
	denoms vending.Denominations

	stock    []vending.Product
	reserve  purse
	inserted []vending.Coin
}

// Option configures a Machine at construction.
type Option func(*Machine)

// WithStock loads the initial product stock.
func WithStock(products []vending.Product) Option {
	return func(m *Machine) {
		m.ResetStock(products)
	}
}

// WithChange loads the initial change reserve.
func WithChange(coins []vending.Coin) Option {
	return func(m *Machine) {
		m.ResetChange(coins)
	}
}

// New creates an empty machine accepting denoms, then applies opts.
func New(denoms vending.Denominations, opts ...Option) *Machine {
	m := &Machine{
		denoms:  denoms,
		reserve: purse{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) Denominations() vending.Denominations {
	return m.denoms
}

// ResetStock replaces the stock wholesale. Placeholder products (no name or
// a non-positive price) are dropped.
func (m *Machine) ResetStock(products []vending.Product) {
	stock := make([]vending.Product, 0, len(products))
	for _, p := range products {
		if p.Valid() {
			stock = append(stock, p)
		}
	}
	m.stock = stock
}

// ResetChange replaces the change reserve wholesale, keeping only coins of
// an accepted denomination.
func (m *Machine) ResetChange(coins []vending.Coin) {
	reserve := make(purse, len(coins))
	for _, c := range coins {
		if m.denoms.IsValid(c) {
			reserve.add(c)
		}
	}
	m.reserve = reserve
}

// Balance is the value of the coins inserted so far.
func (m *Machine) Balance() int {
	return vending.SumCoins(m.inserted)
}

// InsertCoin adds c to the balance. It returns false and changes nothing
// when c is NotACoin or not an accepted denomination.
func (m *Machine) InsertCoin(c vending.Coin) bool {
	if c.IsZero() || !m.denoms.IsValid(c) {
		return false
	}
	m.inserted = append(m.inserted, c)
	return true
}

// Refund hands back every inserted coin and zeroes the balance. Stock and
// the change reserve are untouched.
func (m *Machine) Refund() []vending.Coin {
	out := m.inserted
	m.inserted = nil
	return out
}

// Stock returns a copy of the stocked products in load order.
func (m *Machine) Stock() []vending.Product {
	return slices.Clone(m.stock)
}

// Change returns a copy of the change reserve, largest coin first.
func (m *Machine) Change() []vending.Coin {
	return m.reserve.coins()
}

// Inserted returns a copy of the inserted coins in insertion order.
func (m *Machine) Inserted() []vending.Coin {
	return slices.Clone(m.inserted)
}

// Purchase tries to vend the cheapest stocked product called name.
//
// Checks run in order: stock, balance, change. The first failing check
// decides the reason and nothing is mutated. On success one unit leaves
// stock, the inserted coins join the reserve, the change is taken out of
// the reserve and the balance returns to zero.
func (m *Machine) Purchase(name string) PurchaseResult {
	idx := m.cheapest(name)
	if idx < 0 {
		return failed(OutOfStock)
	}
	product := m.stock[idx]

	balance := m.Balance()
	if balance < product.Price {
		return failed(InsufficientBalance)
	}

	pool := m.reserve.clone()
	pool.add(m.inserted...)
	change, ok := makeChange(pool, balance-product.Price)
	if !ok {
		return failed(InsufficientChange)
	}

	m.commit(idx, pool, change)
	return succeeded(product, change, m.denoms)
}

// cheapest returns the stock index of the lowest-priced product matching
// name, first in load order on ties, or -1.
func (m *Machine) cheapest(name string) int {
	best := -1
	for i, p := range m.stock {
		if !p.MatchesName(name) {
			continue
		}
		if best < 0 || p.Price < m.stock[best].Price {
			best = i
		}
	}
	return best
}

// commit applies a purchase already proven to succeed. pool is the reserve
// with the inserted coins added; change has been selected from it.
func (m *Machine) commit(idx int, pool purse, change []vending.Coin) {
	var before, overpaid int
	if check.Enabled {
		before = pool.total()
		overpaid = m.Balance() - m.stock[idx].Price
	}

	removed := pool.remove(change...)
	check.Assert(removed, "dispensed change must come from the pool")

	m.stock = slices.Delete(m.stock, idx, idx+1)
	m.reserve = pool
	m.inserted = nil

	if check.Enabled {
		dispensed := vending.SumCoins(change)
		check.Assertf(dispensed == overpaid, "dispensed %d, overpayment %d", dispensed, overpaid)
		check.Assertf(before == m.reserve.total()+dispensed,
			"coin value not conserved: pool %d, reserve %d, change %d",
			before, m.reserve.total(), dispensed)
	}
}
