package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vending"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	d := vending.Sterling()
	cfg, err := Default(d)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if cfg.Source != "embedded" {
		t.Fatalf("Source = %q, want embedded", cfg.Source)
	}
	if len(cfg.Products()) == 0 {
		t.Fatal("default config has no products")
	}
	if len(cfg.Coins(d)) == 0 {
		t.Fatal("default config has no change")
	}
}

func TestLoadFormats(t *testing.T) {
	yamlDef := `
stock:
  - name: Banana
    price: 30
    quantity: 2
  - name: Cola
    price: 90
    quantity: 1
change:
  - coin: "£1"
    quantity: 2
  - coin: 20p
    quantity: 1
`
	jsonDef := `{
  "stock": [
    {"name": "Banana", "price": 30, "quantity": 2},
    {"name": "Cola", "price": 90, "quantity": 1}
  ],
  "change": [
    {"coin": "£1", "quantity": 2},
    {"coin": "20p", "quantity": 1}
  ]
}`
	tomlDef := `
[[stock]]
name = "Banana"
price = 30
quantity = 2

[[stock]]
name = "Cola"
price = 90
quantity = 1

[[change]]
coin = "£1"
quantity = 2

[[change]]
coin = "20p"
quantity = 1
`

	testCases := []struct {
		file    string
		content string
	}{
		{file: "machine.yaml", content: yamlDef},
		{file: "machine.json", content: jsonDef},
		{file: "machine.toml", content: tomlDef},
	}

	d := vending.Sterling()
	wantProducts := []vending.Product{
		vending.NewProduct("Banana", 30),
		vending.NewProduct("Banana", 30),
		vending.NewProduct("Cola", 90),
	}
	wantCoins := []int{100, 100, 20}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.content)
			cfg, err := Load(path, d)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Source != path {
				t.Fatalf("Source = %q, want %q", cfg.Source, path)
			}
			if diff := cmp.Diff(wantProducts, cfg.Products()); diff != "" {
				t.Fatalf("Products() mismatch (-want +got):\n%s", diff)
			}
			var got []int
			for _, c := range cfg.Coins(d) {
				got = append(got, c.Value())
			}
			if diff := cmp.Diff(wantCoins, got); diff != "" {
				t.Fatalf("Coins() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), vending.Sterling())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() error = %v, want not exist", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, "bad.yaml", "stock: [\n")
	_, err := Load(path, vending.Sterling())
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load() error = %v, want parse error", err)
	}
}

func TestValidateRejectsBadEntries(t *testing.T) {
	cfg := &Config{
		Stock: []StockItem{
			{Name: "Banana", Price: 30, Quantity: 1},
			{Name: " ", Price: 30, Quantity: 1},
			{Name: "Cola", Price: 0, Quantity: 1},
			{Name: "Water", Price: 65, Quantity: -2},
		},
		Change: []CoinStack{
			{Coin: "£1", Quantity: 1},
			{Coin: "3p", Quantity: 1},
			{Coin: "50p", Quantity: 0},
		},
	}

	err := cfg.Validate(vending.Sterling())
	if err == nil {
		t.Fatal("Validate() error = nil")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %T, want *ValidationError", err)
	}

	for _, field := range []string{
		"stock[1].name",
		"stock[2].price",
		"stock[3].quantity",
		"change[1].coin",
		"change[2].quantity",
	} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("Validate() error %q missing %s", err, field)
		}
	}
	for _, field := range []string{"stock[0]", "change[0]"} {
		if strings.Contains(err.Error(), field) {
			t.Fatalf("Validate() error %q flags valid entry %s", err, field)
		}
	}
}

func TestLoadWrapsValidation(t *testing.T) {
	path := writeFile(t, "machine.yaml", "stock:\n  - name: Cola\n    price: -1\n    quantity: 1\n")
	_, err := Load(path, vending.Sterling())

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Load() error = %v, want *ValidationError", err)
	}
	if verr.Field != "stock[0].price" {
		t.Fatalf("Field = %q, want stock[0].price", verr.Field)
	}
}

func TestCoinsSkipsUnknownLabels(t *testing.T) {
	cfg := &Config{Change: []CoinStack{{Coin: "3p", Quantity: 4}, {Coin: "5p", Quantity: 2}}}

	if got := len(cfg.Coins(vending.Sterling())); got != 2 {
		t.Fatalf("Coins() returned %d coins, want 2", got)
	}
}

func TestResolve(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(EnvPath, "")

	if got := Resolve(""); got != "" {
		t.Fatalf("Resolve() = %q, want embedded", got)
	}

	defaultPath := filepath.Join(xdg, "vending", "machine.yaml")
	if got := Path(); got != defaultPath {
		t.Fatalf("Path() = %q, want %q", got, defaultPath)
	}
	if err := os.MkdirAll(filepath.Dir(defaultPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(defaultPath, []byte("stock: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Resolve(""); got != defaultPath {
		t.Fatalf("Resolve() = %q, want %q", got, defaultPath)
	}

	t.Setenv(EnvPath, "/from/env.yaml")
	if got := Resolve(""); got != "/from/env.yaml" {
		t.Fatalf("Resolve() = %q, want env path", got)
	}
	if got := Resolve(" /explicit.toml "); got != "/explicit.toml" {
		t.Fatalf("Resolve() = %q, want explicit path", got)
	}
}
