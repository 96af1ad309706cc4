package catalog

import (
	"slices"
)

// CategoryGroup is the set of requested category ids sharing one category
// type. Ids within a group are alternatives (OR); distinct groups narrow a
// search independently (AND).
type CategoryGroup struct {
	Type CategoryType
	IDs  []int64
}

// GroupCategoryRefs groups resolved (id, type) pairs by type. Ids within a
// group come out sorted and deduplicated, and groups come out ordered by
// type, so the same request always produces the same groups and with them
// the same query plan.
//
// Requested ids that did not resolve are simply not in refs; a request
// naming a nonexistent category contributes no constraint from that id.
// Zero refs yield zero groups, which downstream means no category predicate
// at all.
func GroupCategoryRefs(refs []CategoryRef) []CategoryGroup {
	byType := make(map[CategoryType][]int64)

	for _, ref := range refs {
		byType[ref.Type] = append(byType[ref.Type], ref.ID)
	}

	groups := make([]CategoryGroup, 0, len(byType))
	for categoryType, ids := range byType {
		slices.Sort(ids)
		ids = slices.Compact(ids)

		groups = append(groups, CategoryGroup{Type: categoryType, IDs: ids})
	}

	slices.SortFunc(groups, func(a, b CategoryGroup) int {
		if a.Type < b.Type {
			return -1
		}
		if a.Type > b.Type {
			return 1
		}

		return 0
	})

	return groups
}
