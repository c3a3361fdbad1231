package category

import (
	"errors"
	"testing"

	errs "github.com/clausedesk/clausedesk-backend/internal/pkg/errors"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

func TestCreateCategoryValidation(t *testing.T) {
	e := NewEngine(nil, nil)

	if r := e.CreateCategory(""); r.Success || !errors.Is(r.Err, errs.ErrInvalidArgument) {
		t.Fatalf("empty name: got %+v, want ErrInvalidArgument", r)
	}
	if r := e.CreateCategory("   "); r.Success || !errors.Is(r.Err, errs.ErrInvalidArgument) {
		t.Fatalf("blank name: got %+v, want ErrInvalidArgument", r)
	}
	if r := e.CreateCategory("Payments"); !r.Success {
		t.Fatalf("create failed: %+v", r)
	}
	if r := e.CreateCategory("Payments"); r.Success || !errors.Is(r.Err, errs.ErrDuplicate) {
		t.Fatalf("duplicate create: got %+v, want ErrDuplicate", r)
	}
	// Case-sensitive names: a different casing is a different category.
	if r := e.CreateCategory("payments"); !r.Success {
		t.Fatalf("case-variant create failed: %+v", r)
	}
}

func TestAddRemoveClause(t *testing.T) {
	c := &types.Clause{ClauseNumber: "1.1"}
	e := NewEngine(nil, []*types.Clause{c})
	e.CreateCategory("Payments")

	if r := e.AddClause("", "Payments"); r.Success || !errors.Is(r.Err, errs.ErrInvalidArgument) {
		t.Fatalf("empty clause number: %+v", r)
	}
	if r := e.AddClause("1.1", "Nope"); r.Success || !errors.Is(r.Err, errs.ErrNotFound) {
		t.Fatalf("missing category: %+v", r)
	}
	if r := e.AddClause("1.1", "Payments"); !r.Success {
		t.Fatalf("add failed: %+v", r)
	}
	if c.Category != "Payments" {
		t.Fatalf("denormalized field not projected: %q", c.Category)
	}
	if r := e.AddClause("1.1", "Payments"); r.Success || !errors.Is(r.Err, errs.ErrDuplicate) {
		t.Fatalf("duplicate membership: %+v", r)
	}

	// Removing a non-member is a success (idempotent).
	if r := e.RemoveClause("9.9", "Payments"); !r.Success {
		t.Fatalf("idempotent remove failed: %+v", r)
	}
	if r := e.RemoveClause("1.1", "Payments"); !r.Success {
		t.Fatalf("remove failed: %+v", r)
	}
	if c.Category != "" {
		t.Fatalf("clause still categorized after removal: %q", c.Category)
	}
}

func TestReassignmentMovesMembership(t *testing.T) {
	c := &types.Clause{ClauseNumber: "4.1(a)"}
	e := NewEngine(nil, []*types.Clause{c})
	e.CreateCategory("Payments")
	e.CreateCategory("Time")

	e.AddClause("4.1(a)", "Payments")
	if r := e.AddClause("4.1(a)", "Time"); !r.Success {
		t.Fatalf("reassign failed: %+v", r)
	}
	members, _ := e.ShowCategory("Payments")
	if len(members) != 0 {
		t.Fatalf("old category still holds clause: %v", members)
	}
	members, _ = e.ShowCategory("Time")
	if len(members) != 1 || members[0] != "4.1a" {
		t.Fatalf("new category members wrong: %v", members)
	}
	if c.Category != "Time" {
		t.Fatalf("denormalized field=%q, want Time", c.Category)
	}
}

func TestRenameCascades(t *testing.T) {
	c := &types.Clause{ClauseNumber: "1.1"}
	e := NewEngine(nil, []*types.Clause{c})
	e.CreateCategory("Payments")
	e.AddClause("1.1", "Payments")

	if r := e.RenameCategory("Payments", ""); r.Success || !errors.Is(r.Err, errs.ErrInvalidArgument) {
		t.Fatalf("blank rename: %+v", r)
	}
	if r := e.RenameCategory("Nope", "X"); r.Success || !errors.Is(r.Err, errs.ErrNotFound) {
		t.Fatalf("rename missing: %+v", r)
	}
	if r := e.RenameCategory("Payments", "Money"); !r.Success {
		t.Fatalf("rename failed: %+v", r)
	}
	if c.Category != "Money" {
		t.Fatalf("member clause not cascaded: %q", c.Category)
	}
	if _, r := e.ShowCategory("Payments"); r.Success {
		t.Fatal("old name still resolves")
	}
	members, r := e.ShowCategory("Money")
	if !r.Success || len(members) != 1 {
		t.Fatalf("new name members: %v %+v", members, r)
	}
}

func TestDeleteUnassignsButKeepsClauses(t *testing.T) {
	c := &types.Clause{ClauseNumber: "1.1"}
	clauses := []*types.Clause{c}
	e := NewEngine(nil, clauses)
	e.CreateCategory("Payments")
	e.AddClause("1.1", "Payments")

	if r := e.DeleteCategory("Nope"); r.Success || !errors.Is(r.Err, errs.ErrNotFound) {
		t.Fatalf("delete missing: %+v", r)
	}
	if r := e.DeleteCategory("Payments"); !r.Success {
		t.Fatalf("delete failed: %+v", r)
	}
	if c.Category != "" {
		t.Fatalf("clause still categorized: %q", c.Category)
	}
	if len(clauses) != 1 {
		t.Fatal("clause records must survive category deletion")
	}
	if _, exists := e.CategoryOf("1.1"); exists {
		t.Fatal("assignment survived deletion")
	}
}

func TestBulkAssignPartialSuccess(t *testing.T) {
	e := NewEngine(nil, nil)
	// Category does not exist yet: bulk assign creates it first.
	res := e.BulkAssign([]string{"1.1", "2.1", "", "1.1"}, "Payments")
	if res.Succeeded != 2 {
		t.Fatalf("succeeded=%d, want 2", res.Succeeded)
	}
	if res.Failed != 2 {
		t.Fatalf("failed=%d, want 2 (empty number, duplicate)", res.Failed)
	}
	members, _ := e.ShowCategory("Payments")
	if len(members) != 2 {
		t.Fatalf("members=%v, want 2 entries", members)
	}
}

func TestDisplayOrder(t *testing.T) {
	e := NewEngine([]string{"Time", "Payments", "Defects"}, nil)

	// No explicit order: alphabetical.
	got := e.DisplayOrder()
	want := []string{"Defects", "Payments", "Time"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("alphabetical fallback: got %v, want %v", got, want)
		}
	}

	e.SetDisplayOrder([]string{"Payments", "Time"})
	got = e.DisplayOrder()
	want = []string{"Payments", "Time", "Defects"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("explicit order: got %v, want %v", got, want)
		}
	}

	idx := e.OrderIndex()
	if idx["Payments"] != 0 || idx["Defects"] != 2 {
		t.Fatalf("order index wrong: %v", idx)
	}
}

func TestMembershipSeedKeepsStoredOrder(t *testing.T) {
	// Clause storage order (position) differs from assignment order; the
	// stored membership list must win on reload.
	clauses := []*types.Clause{
		{ClauseNumber: "1.1", Position: 0, Category: "Payments"},
		{ClauseNumber: "9.9", Position: 1, Category: "Payments"},
	}
	e := NewEngineWithMembership([]string{"Payments"}, clauses, map[string][]string{
		"Payments": {"9.9", "1.1"},
	})

	members, r := e.ShowCategory("Payments")
	if !r.Success {
		t.Fatalf("show failed: %+v", r)
	}
	want := []string{"9.9", "1.1"}
	if len(members) != len(want) {
		t.Fatalf("members=%v, want %v", members, want)
	}
	for i := range want {
		if members[i] != want[i] {
			t.Fatalf("members=%v, want %v", members, want)
		}
	}
}

func TestMembershipSeedFallsBackToDenormalized(t *testing.T) {
	// A clause with a denormalized category but no stored member row joins
	// after the seeded members.
	clauses := []*types.Clause{
		{ClauseNumber: "2.2", Position: 0, Category: "Payments"},
	}
	e := NewEngineWithMembership([]string{"Payments"}, clauses, map[string][]string{
		"Payments": {"9.9"},
	})

	members, _ := e.ShowCategory("Payments")
	want := []string{"9.9", "2.2"}
	if len(members) != 2 || members[0] != want[0] || members[1] != want[1] {
		t.Fatalf("members=%v, want %v", members, want)
	}
}
