package clause

import (
	"testing"

	"github.com/clausedesk/clausedesk-backend/internal/types"
)

func mk(number, title string) *types.Clause {
	return &types.Clause{ClauseNumber: number, ClauseTitle: title}
}

func TestGroupClausesPartition(t *testing.T) {
	clauses := []*types.Clause{
		mk("1.1", "Definitions"),
		mk("4.1", "Contractor's Obligations"),
		mk("4.1(a)", "Obligations - design"),
		mk("4.1(b)", "Obligations - build"),
		mk("22A.3", "Insurance"),
	}
	groups := GroupClauses(clauses)

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	seen := map[string]bool{}
	total := 0
	for _, g := range groups {
		if !g.Synthetic {
			seen[g.Parent.ClauseNumber] = true
			total++
		}
		for _, s := range g.SubClauses {
			seen[s.ClauseNumber] = true
			total++
		}
	}
	if total != len(clauses) {
		t.Fatalf("partition visited %d clauses, want %d", total, len(clauses))
	}
	for _, c := range clauses {
		if !seen[c.ClauseNumber] {
			t.Fatalf("clause %q dropped from partition", c.ClauseNumber)
		}
	}

	if groups[1].Key != "4.1" || len(groups[1].SubClauses) != 2 {
		t.Fatalf("group 4.1 malformed: key=%q subs=%d", groups[1].Key, len(groups[1].SubClauses))
	}
}

func TestGroupClausesFirstSeenOrder(t *testing.T) {
	clauses := []*types.Clause{
		mk("9.2", ""),
		mk("4.1(a)", ""),
		mk("4.1", ""),
		mk("1.1", ""),
	}
	groups := GroupClauses(clauses)
	wantKeys := []string{"9.2", "4.1", "1.1"}
	if len(groups) != len(wantKeys) {
		t.Fatalf("got %d groups, want %d", len(groups), len(wantKeys))
	}
	for i, k := range wantKeys {
		if groups[i].Key != k {
			t.Fatalf("group[%d].Key=%q, want %q", i, groups[i].Key, k)
		}
	}
	if groups[1].Synthetic {
		t.Fatal("group 4.1 has a real parent record, must not be synthetic")
	}
}

func TestGroupClausesNaturalSubOrder(t *testing.T) {
	clauses := []*types.Clause{
		mk("4.1", ""),
		mk("4.1(10)", ""),
		mk("4.1(2)", ""),
	}
	groups := GroupClauses(clauses)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	subs := groups[0].SubClauses
	if len(subs) != 2 || subs[0].ClauseNumber != "4.1(2)" || subs[1].ClauseNumber != "4.1(10)" {
		t.Fatalf("sub order wrong: %v, %v", subs[0].ClauseNumber, subs[1].ClauseNumber)
	}
}

func TestGroupClausesSyntheticParent(t *testing.T) {
	clauses := []*types.Clause{
		mk("7.4(a)", "Testing - samples"),
		mk("7.4(b)", "Testing - costs"),
	}
	groups := GroupClauses(clauses)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	g := groups[0]
	if !g.Synthetic {
		t.Fatal("expected synthetic parent")
	}
	if g.Parent.ClauseNumber != "7.4" {
		t.Fatalf("synthetic parent number=%q, want 7.4", g.Parent.ClauseNumber)
	}
	if g.Parent.ClauseTitle != "Testing" {
		t.Fatalf("synthetic parent title=%q, want Testing", g.Parent.ClauseTitle)
	}
	if len(g.SubClauses) != 2 {
		t.Fatalf("synthetic group has %d subs, want 2", len(g.SubClauses))
	}
}

func TestGroupClausesMalformedSingleton(t *testing.T) {
	clauses := []*types.Clause{
		mk("4.1(a)(b)", ""),
		mk("4.1(a)", ""),
		mk("(((", ""),
	}
	groups := GroupClauses(clauses)
	total := 0
	for _, g := range groups {
		if !g.Synthetic {
			total++
		}
		total += len(g.SubClauses)
	}
	if total != len(clauses) {
		t.Fatalf("partition visited %d clauses, want %d", total, len(clauses))
	}
}

func TestMergeGroupText(t *testing.T) {
	parent := mk("4.1", "Parent")
	parent.ClauseText = "Parent"
	a := mk("4.1(a)", "")
	a.GeneralCondition = "A text"
	b := mk("4.1(b)", "")
	b.ParticularCondition = "B text"

	groups := GroupClauses([]*types.Clause{parent, a, b})
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if n := len(groups[0].SubClauses); n != 2 {
		t.Fatalf("got %d subs, want 2", n)
	}
	if groups[0].SubClauses[0].ClauseNumber != "4.1(a)" {
		t.Fatalf("sub order wrong: %q first", groups[0].SubClauses[0].ClauseNumber)
	}

	merged := MergeGroupText(groups[0])
	if merged.GeneralCondition != "A text" {
		t.Fatalf("general=%q, want %q", merged.GeneralCondition, "A text")
	}
	if merged.ParticularCondition != "B text" {
		t.Fatalf("particular=%q, want %q", merged.ParticularCondition, "B text")
	}
	// Field-level separation: general text never leaks into particular.
	merged2 := MergeGroupText(Group{Parent: parent, SubClauses: []*types.Clause{a, a}})
	if merged2.GeneralCondition != "A text\n\nA text" {
		t.Fatalf("blank-line join wrong: %q", merged2.GeneralCondition)
	}
	if merged2.ParticularCondition != "" {
		t.Fatalf("particular polluted: %q", merged2.ParticularCondition)
	}
	if parent.GeneralCondition != "" {
		t.Fatal("MergeGroupText must not mutate the original parent")
	}
}
