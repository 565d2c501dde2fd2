package cus

// TypeCount is the number of bodies of one type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CountByType tallies bodies per type in a single pass. Types appear in the
// order they are first seen.
func CountByType(bodies []RegulatoryBody) []TypeCount {
	index := make(map[string]int)
	counts := make([]TypeCount, 0)
	for _, body := range bodies {
		if i, ok := index[body.Type]; ok {
			counts[i].Count++
			continue
		}
		index[body.Type] = len(counts)
		counts = append(counts, TypeCount{Type: body.Type, Count: 1})
	}
	return counts
}

// Total sums the counts.
func Total(counts []TypeCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}
