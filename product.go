package vending

import (
	"strings"

	"golang.org/x/text/cases"
)

// Product is an item the machine can vend. Price is in minor units.
type Product struct {
	Name  string
	Price int
}

func NewProduct(name string, price int) Product {
	return Product{Name: name, Price: price}
}

// Valid reports whether p is a real product rather than a placeholder:
// it needs a name and a positive price.
func (p Product) Valid() bool {
	return strings.TrimSpace(p.Name) != "" && p.Price > 0
}

func (p Product) Equal(other Product) bool {
	return p.Name == other.Name && p.Price == other.Price
}

// MatchesName compares names under Unicode case folding.
func (p Product) MatchesName(query string) bool {
	fold := cases.Fold()
	return fold.String(p.Name) == fold.String(query)
}
