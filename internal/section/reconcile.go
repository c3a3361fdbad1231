// Package section reconciles the unified "Conditions" view with its General
// and Particular source collections: sorting for display, and splitting
// edited unified items back into the two collections with stable re-indexing.
package section

import (
	"sort"

	"github.com/clausedesk/clausedesk-backend/internal/clause"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

type SortMode string

const (
	SortDefault  SortMode = "default"
	SortStatus   SortMode = "status"
	SortChapter  SortMode = "chapter"
	SortCategory SortMode = "category"
)

// Split partitions edited unified items back into the General and Particular
// collections by origin tag. Untagged items (added in the unified view) fall
// back to their condition_type, defaulting to General. Each output collection
// is re-indexed with contiguous zero-based positions.
func Split(unified []*types.Clause) (general, particular []*types.Clause) {
	for _, item := range unified {
		switch originOf(item) {
		case types.ConditionParticular:
			particular = append(particular, item)
		default:
			general = append(general, item)
		}
	}
	reindex(general, types.ConditionGeneral)
	reindex(particular, types.ConditionParticular)
	return general, particular
}

func originOf(item *types.Clause) string {
	if item.Origin != "" {
		return item.Origin
	}
	if item.ConditionType != "" {
		return item.ConditionType
	}
	return types.ConditionGeneral
}

func reindex(items []*types.Clause, origin string) {
	for i, item := range items {
		item.Position = i
		item.Origin = origin
	}
}

// Combine assembles the unified view from the two source collections,
// tagging each item with its origin.
func Combine(general, particular []*types.Clause) []*types.Clause {
	unified := make([]*types.Clause, 0, len(general)+len(particular))
	for _, item := range general {
		item.Origin = types.ConditionGeneral
		unified = append(unified, item)
	}
	for _, item := range particular {
		item.Origin = types.ConditionParticular
		unified = append(unified, item)
	}
	return unified
}

// Status of a unified item, derived from which text fields are populated:
// added (particular only) < modified (both) < gc-only (general only).
const (
	statusAdded = iota
	statusModified
	statusGCOnly
	statusEmpty
)

func statusRank(item *types.Clause) int {
	hasGeneral := item.GeneralCondition != ""
	hasParticular := item.ParticularCondition != ""
	switch {
	case hasParticular && !hasGeneral:
		return statusAdded
	case hasParticular && hasGeneral:
		return statusModified
	case hasGeneral:
		return statusGCOnly
	default:
		return statusEmpty
	}
}

// StatusLabel names the derived status for display.
func StatusLabel(item *types.Clause) string {
	switch statusRank(item) {
	case statusAdded:
		return "added"
	case statusModified:
		return "modified"
	case statusGCOnly:
		return "gc-only"
	default:
		return ""
	}
}

// Sort orders a copy of the unified view for display. categoryOrder maps
// category name to display position for category mode; items without a
// positioned category sort after all categorized items. Every mode is a
// total order and malformed clause numbers order as 0.
func Sort(unified []*types.Clause, mode SortMode, categoryOrder map[string]int) []*types.Clause {
	out := make([]*types.Clause, len(unified))
	copy(out, unified)

	switch mode {
	case SortStatus:
		sort.SliceStable(out, func(i, j int) bool {
			ri, rj := statusRank(out[i]), statusRank(out[j])
			if ri != rj {
				return ri < rj
			}
			return clause.CompareNatural(out[i].ClauseNumber, out[j].ClauseNumber) < 0
		})
	case SortChapter:
		sort.SliceStable(out, func(i, j int) bool {
			ni, nj := clause.LeadingNumber(out[i].ClauseNumber), clause.LeadingNumber(out[j].ClauseNumber)
			if ni != nj {
				return ni < nj
			}
			return clause.CompareNatural(out[i].ClauseNumber, out[j].ClauseNumber) < 0
		})
	case SortCategory:
		sort.SliceStable(out, func(i, j int) bool {
			oi, oj := categoryPos(out[i], categoryOrder), categoryPos(out[j], categoryOrder)
			if oi != oj {
				return oi < oj
			}
			return clause.CompareNatural(out[i].ClauseNumber, out[j].ClauseNumber) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Position < out[j].Position
		})
	}
	return out
}

func categoryPos(item *types.Clause, order map[string]int) int {
	if item.Category == "" {
		return int(^uint(0) >> 1) // uncategorized items sort last
	}
	pos, exists := order[item.Category]
	if !exists {
		return int(^uint(0)>>1) - 1 // order-less categories sort after positioned ones
	}
	return pos
}
