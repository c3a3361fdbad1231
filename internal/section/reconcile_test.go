package section

import (
	"testing"

	"github.com/clausedesk/clausedesk-backend/internal/types"
)

func item(number, origin, condType string) *types.Clause {
	return &types.Clause{ClauseNumber: number, Origin: origin, ConditionType: condType}
}

func TestSplitByOriginTag(t *testing.T) {
	unified := []*types.Clause{
		item("1.1", types.ConditionGeneral, ""),
		item("1.2", types.ConditionParticular, ""),
		item("1.3", types.ConditionGeneral, ""),
		item("2.1", "", types.ConditionParticular), // untagged, classified by condition_type
		item("2.2", "", ""),                        // fully ambiguous, defaults to General
	}
	general, particular := Split(unified)

	if len(general) != 3 || len(particular) != 2 {
		t.Fatalf("split sizes: general=%d particular=%d", len(general), len(particular))
	}
	for i, it := range general {
		if it.Position != i {
			t.Fatalf("general[%d].Position=%d, want contiguous zero-based", i, it.Position)
		}
		if it.Origin != types.ConditionGeneral {
			t.Fatalf("general[%d].Origin=%q", i, it.Origin)
		}
	}
	for i, it := range particular {
		if it.Position != i {
			t.Fatalf("particular[%d].Position=%d, want contiguous zero-based", i, it.Position)
		}
	}
}

func TestSplitCombineRoundTrip(t *testing.T) {
	unified := []*types.Clause{
		item("1.1", types.ConditionGeneral, ""),
		item("1.2", types.ConditionParticular, ""),
		item("3.1", types.ConditionGeneral, ""),
	}
	general, particular := Split(unified)
	recombined := Combine(general, particular)

	if len(recombined) != len(unified) {
		t.Fatalf("recombined %d items, want %d", len(recombined), len(unified))
	}
	seen := map[string]bool{}
	for _, it := range recombined {
		seen[it.ClauseNumber] = true
	}
	for _, it := range unified {
		if !seen[it.ClauseNumber] {
			t.Fatalf("clause %q lost in round trip", it.ClauseNumber)
		}
	}
}

func TestSortChapter(t *testing.T) {
	unified := []*types.Clause{
		item("10.2", "", ""),
		item("2.1", "", ""),
		item("2A.1", "", ""),
	}
	out := Sort(unified, SortChapter, nil)
	// 2A.1 parses to 2, 2.1 to 2.1; both come before 10.2.
	if out[2].ClauseNumber != "10.2" {
		t.Fatalf("10.2 must sort last, got %v last", out[2].ClauseNumber)
	}
	if out[0].ClauseNumber != "2A.1" || out[1].ClauseNumber != "2.1" {
		t.Fatalf("leading-number order wrong: %q, %q", out[0].ClauseNumber, out[1].ClauseNumber)
	}
}

func TestSortStatus(t *testing.T) {
	gcOnly := item("1.1", "", "")
	gcOnly.GeneralCondition = "base"
	modified := item("5.1", "", "")
	modified.GeneralCondition = "base"
	modified.ParticularCondition = "amended"
	added := item("9.1", "", "")
	added.ParticularCondition = "new"

	out := Sort([]*types.Clause{gcOnly, modified, added}, SortStatus, nil)
	wantOrder := []string{"9.1", "5.1", "1.1"} // added < modified < gc-only
	for i, n := range wantOrder {
		if out[i].ClauseNumber != n {
			t.Fatalf("status order[%d]=%q, want %q", i, out[i].ClauseNumber, n)
		}
	}
	for i, n := range wantOrder {
		if StatusLabel(out[i]) != []string{"added", "modified", "gc-only"}[i] {
			t.Fatalf("status label for %q wrong: %q", n, StatusLabel(out[i]))
		}
	}
}

func TestSortStatusTieBreakNumeric(t *testing.T) {
	a := item("10.1", "", "")
	a.GeneralCondition = "x"
	b := item("2.1", "", "")
	b.GeneralCondition = "x"
	out := Sort([]*types.Clause{a, b}, SortStatus, nil)
	if out[0].ClauseNumber != "2.1" {
		t.Fatalf("tie break wrong: %q first", out[0].ClauseNumber)
	}
}

func TestSortCategory(t *testing.T) {
	pay := item("9.1", "", "")
	pay.Category = "Payments"
	timeC := item("1.1", "", "")
	timeC.Category = "Time"
	none := item("0.1", "", "")
	orderless := item("3.1", "", "")
	orderless.Category = "Misc"

	order := map[string]int{"Payments": 0, "Time": 1}
	out := Sort([]*types.Clause{none, timeC, orderless, pay}, SortCategory, order)

	want := []string{"9.1", "1.1", "3.1", "0.1"}
	for i, n := range want {
		if out[i].ClauseNumber != n {
			t.Fatalf("category order[%d]=%q, want %q", i, out[i].ClauseNumber, n)
		}
	}
}

func TestSortDefaultByStoredPosition(t *testing.T) {
	a := item("1.1", "", "")
	a.Position = 2
	b := item("2.1", "", "")
	b.Position = 0
	c := item("3.1", "", "")
	c.Position = 1
	out := Sort([]*types.Clause{a, b, c}, SortDefault, nil)
	want := []string{"2.1", "3.1", "1.1"}
	for i, n := range want {
		if out[i].ClauseNumber != n {
			t.Fatalf("default order[%d]=%q, want %q", i, out[i].ClauseNumber, n)
		}
	}
}

func TestSortMalformedNumbersOrderAsZero(t *testing.T) {
	a := item("General Provisions", "", "")
	b := item("1.1", "", "")
	out := Sort([]*types.Clause{b, a}, SortChapter, nil)
	if out[0].ClauseNumber != "General Provisions" {
		t.Fatalf("malformed number must order as 0, got %q first", out[0].ClauseNumber)
	}
}
