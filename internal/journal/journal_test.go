package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t, Memory)
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	first, err := store.Record(ctx, Entry{
		At:       at,
		Product:  "Banana",
		Outcome:  OutcomeOK,
		Price:    30,
		Tendered: 100,
		Change:   70,
		Coins:    []string{"50p", "20p"},
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if first.ID == "" {
		t.Fatal("Record() did not assign an id")
	}

	second, err := store.Record(ctx, Entry{
		At:       at.Add(time.Second),
		Product:  "Cola",
		Outcome:  "insufficient_balance",
		Tendered: 20,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if diff := cmp.Diff([]Entry{second, first}, got); diff != "" {
		t.Fatalf("Recent() mismatch (-want +got):\n%s", diff)
	}

	limited, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent(1) error = %v", err)
	}
	if len(limited) != 1 || limited[0].ID != second.ID {
		t.Fatalf("Recent(1) = %v, want newest entry only", limited)
	}

	if none, err := store.Recent(ctx, 0); err != nil || none != nil {
		t.Fatalf("Recent(0) = (%v, %v), want (nil, nil)", none, err)
	}
}

func TestRecordFillsTimestamp(t *testing.T) {
	store := openTestStore(t, "")
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	e, err := store.Record(context.Background(), Entry{Product: "Water", Outcome: OutcomeOK, Price: 65})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !e.At.Equal(fixed) {
		t.Fatalf("At = %v, want %v", e.At, fixed)
	}
}

func TestRecordRequiresOutcome(t *testing.T) {
	store := openTestStore(t, Memory)
	if _, err := store.Record(context.Background(), Entry{Product: "Water"}); err == nil {
		t.Fatal("Record() error = nil, want missing outcome error")
	}
}

func TestSummary(t *testing.T) {
	store := openTestStore(t, Memory)
	ctx := context.Background()

	empty, err := store.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if empty != (Summary{}) {
		t.Fatalf("Summary() on empty journal = %+v", empty)
	}

	for _, e := range []Entry{
		{Product: "Banana", Outcome: OutcomeOK, Price: 30},
		{Product: "Cola", Outcome: OutcomeOK, Price: 90},
		{Product: "Pepsi", Outcome: "out_of_stock"},
	} {
		if _, err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := store.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	want := Summary{Vends: 2, Failures: 1, Revenue: 120}
	if got != want {
		t.Fatalf("Summary() = %+v, want %+v", got, want)
	}
}

func TestFileJournalSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := store.Record(context.Background(), Entry{Product: "Crisps", Outcome: OutcomeOK, Price: 55}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := openTestStore(t, path)
	got, err := reopened.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 || got[0].Product != "Crisps" || !got[0].OK() {
		t.Fatalf("Recent() = %+v, want the recorded vend", got)
	}
}
