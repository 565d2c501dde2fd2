package cus

import (
	"cmp"
	"slices"
	"strings"
)

// FilterByRegion keeps the bodies whose region field contains code as a
// substring. "118" therefore matches "18"; callers relying on exact region
// codes must post-filter.
func FilterByRegion(bodies []RegulatoryBody, code string) []RegulatoryBody {
	out := make([]RegulatoryBody, 0, len(bodies))
	for _, body := range bodies {
		if strings.Contains(body.Region, code) {
			out = append(out, body)
		}
	}
	return out
}

// SortByTypeCode orders bodies in place by type, then by code, both compared
// ordinally.
func SortByTypeCode(bodies []RegulatoryBody) {
	slices.SortStableFunc(bodies, func(a, b RegulatoryBody) int {
		if c := cmp.Compare(a.Type, b.Type); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
}

// Select filters bodies by region code and returns them sorted by (type,
// code). The input slice is left untouched.
func Select(bodies []RegulatoryBody, regionCode string) []RegulatoryBody {
	selected := FilterByRegion(bodies, regionCode)
	SortByTypeCode(selected)
	return selected
}
