package vending

import (
	"slices"
	"testing"
)

func TestSterlingValidity(t *testing.T) {
	d := Sterling()
	valid := map[int]bool{1: true, 2: true, 5: true, 10: true, 20: true, 50: true, 100: true, 200: true}

	for v := -5; v <= 500; v++ {
		if got := d.IsValid(NewCoin(v)); got != valid[v] {
			t.Fatalf("IsValid(%d) = %v, want %v", v, got, valid[v])
		}
	}
}

func TestNotACoinIsNeverValid(t *testing.T) {
	if Sterling().IsValid(NotACoin) {
		t.Fatal("NotACoin reported valid")
	}
	if !NotACoin.IsZero() {
		t.Fatal("NotACoin.IsZero() = false")
	}
}

func TestCoinCompare(t *testing.T) {
	if NewCoin(10).Compare(NewCoin(20)) >= 0 {
		t.Fatal("10 should order before 20")
	}
	if NewCoin(50).Compare(NewCoin(50)) != 0 {
		t.Fatal("equal coins should compare equal")
	}
	if NewCoin(10) != NewCoin(10) {
		t.Fatal("coins with the same value should be equal")
	}
}

func TestDenominationsLabels(t *testing.T) {
	d := Sterling()
	want := []string{"£2", "£1", "50p", "20p", "10p", "5p", "2p", "1p"}
	if got := d.Labels(); !slices.Equal(got, want) {
		t.Fatalf("Labels() = %v, want %v", got, want)
	}
	if got := d.Label(NewCoin(50)); got != "50p" {
		t.Fatalf("Label(50) = %q, want 50p", got)
	}
	if got := d.Label(NewCoin(3)); got != "" {
		t.Fatalf("Label(3) = %q, want empty", got)
	}
}

func TestDescendingIsACopy(t *testing.T) {
	d := Sterling()
	coins := d.Descending()
	coins[0] = NewCoin(7)
	if d.Descending()[0] != NewCoin(200) {
		t.Fatal("mutating Descending() result changed the table")
	}
}

func TestNewDenominationsRejectsBadTables(t *testing.T) {
	testCases := []struct {
		name string
		ds   []Denomination
	}{
		{name: "empty"},
		{name: "blank label", ds: []Denomination{{Label: " ", Value: 1}}},
		{name: "zero value", ds: []Denomination{{Label: "0p", Value: 0}}},
		{name: "duplicate value", ds: []Denomination{{Label: "1p", Value: 1}, {Label: "one", Value: 1}}},
		{name: "duplicate label", ds: []Denomination{{Label: "x", Value: 1}, {Label: "X", Value: 2}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDenominations(GBP, tc.ds...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParse(t *testing.T) {
	d := Sterling()
	testCases := []struct {
		in   string
		want int
		ok   bool
	}{
		{in: "£2", want: 200, ok: true},
		{in: "£1", want: 100, ok: true},
		{in: "50p", want: 50, ok: true},
		{in: "50P", want: 50, ok: true},
		{in: " 1p ", want: 1, ok: true},
		{in: "£0.50", want: 50, ok: true},
		{in: "£2.00", want: 200, ok: true},
		{in: "100p", want: 100, ok: true},
		{in: "200P", want: 200, ok: true},
		{in: "3p"},
		{in: "£3"},
		{in: "£0.005"},
		{in: "0.5p"},
		{in: "-1p"},
		{in: "50"},
		{in: "p"},
		{in: "£"},
		{in: ""},
		{in: "banana"},
		{in: "18446744073709551716p"},
		{in: "£184467440737095517.16"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := d.Parse(tc.in)
			if ok != tc.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if !ok {
				if got != NotACoin {
					t.Fatalf("Parse(%q) = %v, want NotACoin", tc.in, got)
				}
				return
			}
			if got.Value() != tc.want {
				t.Fatalf("Parse(%q) = %d, want %d", tc.in, got.Value(), tc.want)
			}
		})
	}
}

func TestSumCoins(t *testing.T) {
	if got := SumCoins([]Coin{NewCoin(20), NewCoin(10), NewCoin(1)}); got != 31 {
		t.Fatalf("SumCoins() = %d, want 31", got)
	}
	if got := SumCoins(nil); got != 0 {
		t.Fatalf("SumCoins(nil) = %d, want 0", got)
	}
}
