package chatmodel

import "sort"

// Summary compresses messages[StartIndex:EndIndex) into a single
// synthetic System message displayed (and sent over the wire) in place
// of that range.
type Summary struct {
	StartIndex int
	EndIndex   int
	Content    string
}

// resolveSummaries keeps one summary per StartIndex: when two summaries
// share a StartIndex, the one with the larger EndIndex wins. The result
// is sorted ascending by StartIndex. Summaries with different starts may
// still overlap; wireMessages skips any that starts inside a range it has
// already replaced.
func resolveSummaries(summaries []Summary) []Summary {
	bestByStart := make(map[int]Summary, len(summaries))
	for _, s := range summaries {
		current, ok := bestByStart[s.StartIndex]
		if !ok || s.EndIndex > current.EndIndex {
			bestByStart[s.StartIndex] = s
		}
	}

	resolved := make([]Summary, 0, len(bestByStart))
	for _, s := range bestByStart {
		resolved = append(resolved, s)
	}
	sort.Slice(resolved, func(i, j int) bool {
		return resolved[i].StartIndex < resolved[j].StartIndex
	})

	return resolved
}
