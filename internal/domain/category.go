package domain

import "strings"

const CategoryOther = "other"

// PlaceCategories is the closed set of categories the domain recognises.
// Category data arrives from external providers and is not authoritative, so
// anything outside this set is coerced to "other" instead of rejected.
var PlaceCategories = []string{
	"restaurant",
	"museum",
	"beach",
	"trail",
	"hotel",
	"lodging",
	"bar",
	"nightlife",
	"park",
	"waterfall",
	"river",
	"shopping",
	"club",
	"water_park",
	CategoryOther,
}

var knownCategories = func() map[string]struct{} {
	m := make(map[string]struct{}, len(PlaceCategories))
	for _, c := range PlaceCategories {
		m[c] = struct{}{}
	}
	return m
}()

type PlaceCategory struct {
	value string
}

// NewPlaceCategory normalises the input (lower-case, trimmed) and falls back
// to "other" for anything outside the closed set. It never fails.
func NewPlaceCategory(category string) PlaceCategory {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if _, ok := knownCategories[normalized]; !ok {
		return PlaceCategory{value: CategoryOther}
	}
	return PlaceCategory{value: normalized}
}

func (c PlaceCategory) Value() string {
	return c.value
}

func (c PlaceCategory) Equals(other PlaceCategory) bool {
	return c.value == other.value
}
