package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pottery-cost/core/session"
	"pottery-cost/internal/errors"
)

// clock returns increasing times one minute apart
func clock() func() time.Time {
	t := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	mem := NewMemoryStore()
	mem.now = clock()

	sqlStore, err := OpenSQL(context.Background(), BackendSQLite, ":memory:")
	if err != nil {
		t.Fatalf("OpenSQL: %v", err)
	}
	sqlStore.now = clock()
	t.Cleanup(func() { sqlStore.Close() })

	return map[string]Store{"memory": mem, "sqlite": sqlStore}
}

func mugRecord(name string, total string) *Record {
	s := session.Default()
	s.Inputs.UnitsMade = 18
	return &Record{Name: name, TotalCost: decimal.RequireFromString(total), Session: s}
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			rec := mugRecord("Mugs spring", "7.35")
			if err := store.Save(ctx, rec); err != nil {
				t.Fatal(err)
			}
			if rec.ID == "" || rec.CreatedAt.IsZero() {
				t.Fatalf("record not stamped: %+v", rec)
			}

			got, err := store.Get(ctx, rec.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.Name != "Mugs spring" || !got.TotalCost.Equal(decimal.RequireFromString("7.35")) {
				t.Errorf("got %+v", got)
			}
			if got.Session.Inputs.UnitsMade != 18 || len(got.Session.Catalog) != 4 {
				t.Errorf("session not restored: %+v", got.Session.Inputs)
			}
			if !got.CreatedAt.Equal(rec.CreatedAt) {
				t.Errorf("created_at = %v, want %v", got.CreatedAt, rec.CreatedAt)
			}

			created := rec.CreatedAt
			update := &Record{ID: rec.ID, Name: "Mugs summer", TotalCost: decimal.RequireFromString("7.10"), Session: rec.Session}
			if err := store.Save(ctx, update); err != nil {
				t.Fatal(err)
			}
			got, err = store.Get(ctx, rec.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.Name != "Mugs summer" || !got.CreatedAt.Equal(created) || !got.UpdatedAt.After(created) {
				t.Errorf("after update %+v", got)
			}

			if err := store.Delete(ctx, rec.ID); err != nil {
				t.Fatal(err)
			}
			if _, err := store.Get(ctx, rec.ID); !errors.IsType(err, errors.TypeNotFound) {
				t.Errorf("get after delete err = %v", err)
			}
			if err := store.Delete(ctx, rec.ID); !errors.IsType(err, errors.TypeNotFound) {
				t.Errorf("second delete err = %v", err)
			}
		})
	}
}

func TestStoreRejects(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Save(ctx, mugRecord("  ", "1")); !errors.IsType(err, errors.TypeInput) {
				t.Errorf("blank name err = %v", err)
			}
			rec := mugRecord("Bowls", "1")
			rec.ID = "not-a-uuid"
			if err := store.Save(ctx, rec); !errors.IsType(err, errors.TypeInput) {
				t.Errorf("bad id err = %v", err)
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []string{"Mugs", "Bowls", "mugs large"} {
				if err := store.Save(ctx, mugRecord(n, "5")); err != nil {
					t.Fatal(err)
				}
			}

			all, err := store.List(ctx, nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(all) != 3 || all[0].Name != "mugs large" || all[2].Name != "Mugs" {
				t.Fatalf("List order = %v", names(all))
			}

			mugs, err := store.List(ctx, &ListFilter{NamePrefix: "MUG"})
			if err != nil {
				t.Fatal(err)
			}
			if len(mugs) != 2 {
				t.Errorf("prefix filter = %v", names(mugs))
			}

			page, err := store.List(ctx, &ListFilter{Limit: 1, Offset: 1})
			if err != nil {
				t.Fatal(err)
			}
			if len(page) != 1 || page[0].Name != "Bowls" {
				t.Errorf("page = %v", names(page))
			}

			rest, err := store.List(ctx, &ListFilter{Offset: 2})
			if err != nil {
				t.Fatal(err)
			}
			if len(rest) != 1 || rest[0].Name != "Mugs" {
				t.Errorf("offset only = %v", names(rest))
			}
		})
	}
}

func TestStoreListLiteralPrefix(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []string{"50% off", "500 mugs", "tea_bowl", "teaXbowl", `back\slash`} {
				if err := store.Save(ctx, mugRecord(n, "5")); err != nil {
					t.Fatal(err)
				}
			}

			tests := []struct {
				prefix string
				want   string
			}{
				{"50%", "50% off"},
				{"tea_", "tea_bowl"},
				{`back\`, `back\slash`},
			}
			for _, tt := range tests {
				got, err := store.List(ctx, &ListFilter{NamePrefix: tt.prefix})
				if err != nil {
					t.Fatal(err)
				}
				if len(got) != 1 || got[0].Name != tt.want {
					t.Errorf("prefix %q = %v, want [%s]", tt.prefix, names(got), tt.want)
				}
			}
		})
	}
}

func TestCompare(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	oldRec := mugRecord("v1", "8.00")
	newRec := mugRecord("v2", "7.00")
	for _, r := range []*Record{oldRec, newRec} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	cmp, err := Compare(ctx, store, oldRec.ID, newRec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Delta.Equal(decimal.RequireFromString("-1")) || !cmp.DeltaPercent.Equal(decimal.RequireFromString("-12.5")) {
		t.Errorf("compare = %+v", cmp)
	}
	if _, err := Compare(ctx, store, oldRec.ID, "missing"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("missing err = %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, "memory", "")
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(ctx, "SQLite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	if _, err := Open(ctx, "mongo", "x"); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("unknown backend err = %v", err)
	}
	if _, err := Open(ctx, "sqlite", ""); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("empty dsn err = %v", err)
	}
}

func names(recs []*Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}
