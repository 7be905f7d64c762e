package usage

import "testing"

func TestTrackerRecordsOnlyRealClamps(t *testing.T) {
	tr := NewTracker()
	tr.ClampedPieces("pieces_per_month", 200)
	tr.ClampedFloat("clay_yield", 0.9, 1e-9)
	if tr.Count() != 0 {
		t.Fatalf("valid values should not be recorded, got %v", tr.All())
	}

	tr.ClampedPieces("pieces_per_month", 0)
	tr.ClampedPieces("pieces_per_month", 0)
	tr.ClampedFloat("clay_yield", 0, 1e-9)
	if tr.Count() != 2 {
		t.Fatalf("expected 2 deduplicated assumptions, got %v", tr.All())
	}
}

func TestTrackerOrdering(t *testing.T) {
	tr := NewTracker()
	tr.Unmatched("recipe", []string{"Zircopax", "Tin Oxide"})
	tr.Duplicates([]string{"silica 325m"})
	tr.ClampedPieces("pieces_per_wood_firing", -3)
	tr.Unpriceable(100)

	all := tr.All()
	if len(all) != 5 {
		t.Fatalf("expected 5 assumptions, got %d", len(all))
	}
	wantKinds := []Kind{KindClamped, KindUnmatched, KindUnmatched, KindDuplicate, KindUnpriceable}
	for i, k := range wantKinds {
		if all[i].Kind != k {
			t.Errorf("all[%d].Kind = %v, want %v", i, all[i].Kind, k)
		}
	}
	if all[1].Detail != `"Zircopax" has no catalog price, costed at 0` {
		t.Errorf("insertion order within a field not kept: %q", all[1].Detail)
	}
	if got := len(tr.OfKind(KindUnmatched)); got != 2 {
		t.Errorf("OfKind(KindUnmatched) = %d entries, want 2", got)
	}
}
