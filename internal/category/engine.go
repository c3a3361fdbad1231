// Package category implements category bookkeeping for clauses: create,
// rename, delete, membership, and display ordering. The engine keeps a single
// authoritative clause-to-category mapping; the per-category clause lists and
// the denormalized Category field on clause records are projections rebuilt
// from it after every mutation.
package category

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clausedesk/clausedesk-backend/internal/clause"
	errs "github.com/clausedesk/clausedesk-backend/internal/pkg/errors"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

// Result is the outcome of one engine operation. Failures are reported here,
// never panicked, so callers can surface inline messages.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Err     error  `json:"-"`
}

func ok(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

func fail(err error) Result {
	return Result{Success: false, Message: err.Error(), Err: err}
}

// BulkResult aggregates per-item outcomes of a bulk assignment.
type BulkResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

type memberList struct {
	order   []string        // canonical ids, insertion order
	present map[string]bool // membership check
}

// Engine holds category state for one contract.
type Engine struct {
	names      []string               // creation order
	members    map[string]*memberList // category name -> members
	assignment map[string]string      // canonical clause id -> category name (authoritative)
	clauses    []*types.Clause        // denormalized Category field kept in sync

	displayOrder  []string
	orderExplicit bool
}

// NewEngine builds an engine from existing categories (in stored display
// order) and the clause records whose denormalized fields it maintains.
// Membership order is reseeded from the denormalized fields in clause order.
func NewEngine(categories []string, clauses []*types.Clause) *Engine {
	return NewEngineWithMembership(categories, clauses, nil)
}

// NewEngineWithMembership seeds membership from the stored mapping first
// (category name to canonical ids, rank order), so insertion order survives a
// reload. Clauses carrying a denormalized category but no stored member row
// are appended after the seeded ones.
func NewEngineWithMembership(categories []string, clauses []*types.Clause, membership map[string][]string) *Engine {
	e := &Engine{
		members:    make(map[string]*memberList),
		assignment: make(map[string]string),
		clauses:    clauses,
	}
	for _, name := range categories {
		if _, exists := e.members[name]; exists {
			continue
		}
		e.names = append(e.names, name)
		e.members[name] = &memberList{present: map[string]bool{}}
	}
	for _, name := range e.names {
		ml := e.members[name]
		for _, raw := range membership[name] {
			id := clause.Normalize(raw)
			if id == "" || ml.present[id] {
				continue
			}
			if _, taken := e.assignment[id]; taken {
				continue
			}
			ml.present[id] = true
			ml.order = append(ml.order, id)
			e.assignment[id] = name
		}
	}
	// Denormalized fields fill the gaps for rows with no member record.
	for _, c := range clauses {
		if c.Category == "" {
			continue
		}
		if ml, exists := e.members[c.Category]; exists {
			id := clause.Normalize(c.ClauseNumber)
			if id != "" && !ml.present[id] {
				if _, taken := e.assignment[id]; taken {
					continue
				}
				ml.present[id] = true
				ml.order = append(ml.order, id)
				e.assignment[id] = c.Category
			}
		}
	}
	return e
}

func (e *Engine) CreateCategory(name string) Result {
	if strings.TrimSpace(name) == "" {
		return fail(fmt.Errorf("category name is required: %w", errs.ErrInvalidArgument))
	}
	if _, exists := e.members[name]; exists {
		return fail(fmt.Errorf("category %q: %w", name, errs.ErrDuplicate))
	}
	e.names = append(e.names, name)
	e.members[name] = &memberList{present: map[string]bool{}}
	return ok("category %q created", name)
}

func (e *Engine) RenameCategory(oldName, newName string) Result {
	if strings.TrimSpace(newName) == "" {
		return fail(fmt.Errorf("new category name is required: %w", errs.ErrInvalidArgument))
	}
	ml, exists := e.members[oldName]
	if !exists {
		return fail(fmt.Errorf("category %q: %w", oldName, errs.ErrNotFound))
	}
	if _, taken := e.members[newName]; taken && newName != oldName {
		return fail(fmt.Errorf("category %q: %w", newName, errs.ErrDuplicate))
	}

	delete(e.members, oldName)
	e.members[newName] = ml
	replaceName(e.names, oldName, newName)
	replaceName(e.displayOrder, oldName, newName)
	for id, cat := range e.assignment {
		if cat == oldName {
			e.assignment[id] = newName
		}
	}
	e.project()
	return ok("category %q renamed to %q", oldName, newName)
}

// DeleteCategory removes the category and unassigns its members. The clauses
// themselves are untouched.
func (e *Engine) DeleteCategory(name string) Result {
	ml, exists := e.members[name]
	if !exists {
		return fail(fmt.Errorf("category %q: %w", name, errs.ErrNotFound))
	}
	for _, id := range ml.order {
		delete(e.assignment, id)
	}
	delete(e.members, name)
	e.names = removeName(e.names, name)
	e.displayOrder = removeName(e.displayOrder, name)
	e.project()
	return ok("category %q deleted", name)
}

func (e *Engine) AddClause(clauseNumber, categoryName string) Result {
	if strings.TrimSpace(clauseNumber) == "" || strings.TrimSpace(categoryName) == "" {
		return fail(fmt.Errorf("clause number and category name are required: %w", errs.ErrInvalidArgument))
	}
	ml, exists := e.members[categoryName]
	if !exists {
		return fail(fmt.Errorf("category %q: %w", categoryName, errs.ErrNotFound))
	}
	id := clause.Normalize(clauseNumber)
	if ml.present[id] {
		return fail(fmt.Errorf("clause %q in category %q: %w", clauseNumber, categoryName, errs.ErrDuplicate))
	}
	// One category per clause: reassignment moves the membership.
	if prev, assigned := e.assignment[id]; assigned && prev != categoryName {
		e.removeMember(prev, id)
	}
	ml.present[id] = true
	ml.order = append(ml.order, id)
	e.assignment[id] = categoryName
	e.project()
	return ok("clause %q added to category %q", clauseNumber, categoryName)
}

// RemoveClause is idempotent: removing a non-member succeeds.
func (e *Engine) RemoveClause(clauseNumber, categoryName string) Result {
	if _, exists := e.members[categoryName]; !exists {
		return fail(fmt.Errorf("category %q: %w", categoryName, errs.ErrNotFound))
	}
	id := clause.Normalize(clauseNumber)
	if e.assignment[id] == categoryName {
		delete(e.assignment, id)
	}
	e.removeMember(categoryName, id)
	e.project()
	return ok("clause %q removed from category %q", clauseNumber, categoryName)
}

// ShowCategory returns the member canonical ids in insertion order.
func (e *Engine) ShowCategory(categoryName string) ([]string, Result) {
	ml, exists := e.members[categoryName]
	if !exists {
		return nil, fail(fmt.Errorf("category %q: %w", categoryName, errs.ErrNotFound))
	}
	out := make([]string, len(ml.order))
	copy(out, ml.order)
	return out, ok("category %q has %d clauses", categoryName, len(out))
}

// BulkAssign applies AddClause for each number against one category, creating
// the category first when missing. One bad item does not abort the batch;
// outcomes are counted per item.
func (e *Engine) BulkAssign(clauseNumbers []string, categoryName string) BulkResult {
	var res BulkResult
	if _, exists := e.members[categoryName]; !exists {
		if r := e.CreateCategory(categoryName); !r.Success {
			res.Failed = len(clauseNumbers)
			res.Errors = append(res.Errors, r.Message)
			return res
		}
	}
	for _, n := range clauseNumbers {
		if r := e.AddClause(n, categoryName); r.Success {
			res.Succeeded++
		} else {
			res.Failed++
			res.Errors = append(res.Errors, r.Message)
		}
	}
	return res
}

// SetDisplayOrder records a user-adjusted ordering. Unknown names are
// ignored; categories missing from the list keep their relative creation
// order after the listed ones.
func (e *Engine) SetDisplayOrder(names []string) Result {
	var order []string
	seen := map[string]bool{}
	for _, n := range names {
		if _, exists := e.members[n]; exists && !seen[n] {
			order = append(order, n)
			seen[n] = true
		}
	}
	for _, n := range e.names {
		if !seen[n] {
			order = append(order, n)
		}
	}
	e.displayOrder = order
	e.orderExplicit = true
	return ok("display order set")
}

// DisplayOrder returns category names in display order: the explicit order
// when one was set, alphabetical otherwise.
func (e *Engine) DisplayOrder() []string {
	if e.orderExplicit {
		out := make([]string, len(e.displayOrder))
		copy(out, e.displayOrder)
		return out
	}
	out := make([]string, len(e.names))
	copy(out, e.names)
	sort.Strings(out)
	return out
}

// OrderIndex maps category name to display position, for category-mode
// sorting of the unified view.
func (e *Engine) OrderIndex() map[string]int {
	idx := make(map[string]int)
	for i, n := range e.DisplayOrder() {
		idx[n] = i
	}
	return idx
}

// CategoryOf returns the category a canonical clause id is assigned to.
func (e *Engine) CategoryOf(canonicalID string) (string, bool) {
	name, exists := e.assignment[canonicalID]
	return name, exists
}

// Categories projects the current state into storable records: names in
// creation order with their member ids.
func (e *Engine) Categories() []ProjectedCategory {
	out := make([]ProjectedCategory, 0, len(e.names))
	for _, n := range e.names {
		ml := e.members[n]
		numbers := make([]string, len(ml.order))
		copy(numbers, ml.order)
		out = append(out, ProjectedCategory{Name: n, ClauseNumbers: numbers})
	}
	return out
}

type ProjectedCategory struct {
	Name          string   `json:"name"`
	ClauseNumbers []string `json:"clause_numbers"`
}

func (e *Engine) removeMember(categoryName, id string) {
	ml, exists := e.members[categoryName]
	if !exists {
		return
	}
	if !ml.present[id] {
		return
	}
	delete(ml.present, id)
	ml.order = removeName(ml.order, id)
}

// project rebuilds the denormalized Category field on every clause record
// from the authoritative assignment map.
func (e *Engine) project() {
	for _, c := range e.clauses {
		id := clause.Normalize(c.ClauseNumber)
		c.Category = e.assignment[id]
	}
}

func replaceName(names []string, oldName, newName string) {
	for i, n := range names {
		if n == oldName {
			names[i] = newName
		}
	}
}

func removeName(names []string, target string) []string {
	out := names[:0]
	for _, n := range names {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}
