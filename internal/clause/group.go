package clause

import (
	"regexp"
	"sort"
	"strings"

	"github.com/clausedesk/clausedesk-backend/internal/types"
)

// subClauseRe matches numbers like "4.1(a)" or "4.1 (2)": a trailing
// alphanumeric parenthetical nested under the prefix before it.
var subClauseRe = regexp.MustCompile(`^(.+?)\s*\(([A-Za-z0-9]+)\)$`)

// Group is one parent clause together with its sub-clauses. Synthetic is set
// when no record exists for the parent number and one had to be derived from
// the first orphaned sub-clause.
type Group struct {
	Key        string
	Parent     *types.Clause
	SubClauses []*types.Clause
	Synthetic  bool
}

// ParentNumber returns the parent prefix of a sub-clause number, or the number
// itself if it is not sub-shaped.
func ParentNumber(number string) string {
	if m := subClauseRe.FindStringSubmatch(number); m != nil {
		return strings.TrimSpace(m[1])
	}
	return number
}

// IsSubClause reports whether a raw clause number is sub-shaped.
func IsSubClause(number string) bool {
	return subClauseRe.MatchString(number)
}

// GroupClauses partitions a flat clause collection into parent/sub-clause
// groups. Group keys appear in first-seen order, sub-clauses sort with
// numeric-aware comparison, and every clause number lands in exactly one
// group; numbers that match nothing become singleton groups.
func GroupClauses(clauses []*types.Clause) []Group {
	byRaw := make(map[string]*types.Clause, len(clauses))
	for _, c := range clauses {
		if _, ok := byRaw[c.ClauseNumber]; !ok {
			byRaw[c.ClauseNumber] = c
		}
	}

	processed := make(map[string]bool, len(clauses))
	var groups []Group

	collectSubs := func(parentRaw string) []*types.Clause {
		var subs []*types.Clause
		for _, s := range clauses {
			if s.ClauseNumber == parentRaw || processed[s.ClauseNumber] {
				continue
			}
			m := subClauseRe.FindStringSubmatch(s.ClauseNumber)
			if m == nil || strings.TrimSpace(m[1]) != parentRaw {
				continue
			}
			processed[s.ClauseNumber] = true
			subs = append(subs, s)
		}
		sort.SliceStable(subs, func(i, j int) bool {
			return CompareNatural(subs[i].ClauseNumber, subs[j].ClauseNumber) < 0
		})
		return subs
	}

	for _, c := range clauses {
		raw := c.ClauseNumber
		if processed[raw] {
			continue
		}

		m := subClauseRe.FindStringSubmatch(raw)
		if m == nil {
			// Parent-shaped: start a group and pull in its sub-clauses.
			processed[raw] = true
			groups = append(groups, Group{
				Key:        raw,
				Parent:     c,
				SubClauses: collectSubs(raw),
			})
			continue
		}

		parentRaw := strings.TrimSpace(m[1])
		if processed[parentRaw] {
			// The parent prefix was itself consumed as a sub-clause of some
			// other group (e.g. "4.1(a)(b)" under "4.1(a)"). Degrade to a
			// singleton rather than dropping the record.
			processed[raw] = true
			groups = append(groups, Group{Key: raw, Parent: c})
			continue
		}

		processed[parentRaw] = true
		if parent, ok := byRaw[parentRaw]; ok {
			// A sub-clause seen before its parent record: the group forms at
			// the first member's position.
			groups = append(groups, Group{
				Key:        parentRaw,
				Parent:     parent,
				SubClauses: collectSubs(parentRaw),
			})
			continue
		}

		// Orphaned sub-clause: synthesize the parent from the first sibling.
		title := c.ClauseTitle
		if i := strings.Index(title, " - "); i >= 0 {
			title = title[:i]
		}
		synth := &types.Clause{
			ContractID:    c.ContractID,
			ClauseNumber:  parentRaw,
			ClauseTitle:   title,
			ConditionType: c.ConditionType,
		}
		groups = append(groups, Group{
			Key:        parentRaw,
			Parent:     synth,
			SubClauses: collectSubs(parentRaw),
			Synthetic:  true,
		})
	}

	return groups
}

// MergeGroupText folds each sub-clause's dual-source text onto a copy of the
// group's parent, blank-line separated and field-separated: general text only
// ever joins general_condition, particular only particular_condition. Used
// when merging detected bulk-import results into one record per parent.
func MergeGroupText(g Group) *types.Clause {
	merged := *g.Parent
	for _, sub := range g.SubClauses {
		if sub.GeneralCondition != "" {
			merged.GeneralCondition = joinBlankLine(merged.GeneralCondition, sub.GeneralCondition)
		}
		if sub.ParticularCondition != "" {
			merged.ParticularCondition = joinBlankLine(merged.ParticularCondition, sub.ParticularCondition)
		}
	}
	return &merged
}

func joinBlankLine(a, b string) string {
	if a == "" {
		return b
	}
	return a + "\n\n" + b
}
