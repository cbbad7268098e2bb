// Package filterview derives display subsets from the ranked snapshot. It
// never mutates listing fields and never recomputes rank values: filtering
// and re-sorting apply to the already-ranked rows only.
package filterview

import (
	"sort"
	"strings"

	"rentcompare/server/internal/models"
	"rentcompare/server/internal/ranking"
)

// SortChoice selects the display order when zone grouping is off.
type SortChoice string

const (
	SortByRank       SortChoice = "rank"
	SortByMedianAsc  SortChoice = "median_asc"
	SortByMedianDesc SortChoice = "median_desc"
	SortByArea       SortChoice = "area"
)

// Spec is the user-chosen filter and ordering over the ranked table.
type Spec struct {
	Zones       []string
	MinRent     *int
	MaxRent     *int
	SearchText  string
	GroupByZone bool
	Sort        SortChoice
}

// Apply returns the display-ordered subset of listings matching the spec.
// An empty result is a valid outcome.
func Apply(listings []models.EnrichedListing, spec Spec) []models.EnrichedListing {
	predicates := []func(models.EnrichedListing) bool{
		zonePredicate(spec.Zones),
		rentRangePredicate(spec.MinRent, spec.MaxRent),
		searchPredicate(spec.SearchText),
	}

	result := make([]models.EnrichedListing, 0, len(listings))
out:
	for _, l := range listings {
		for _, match := range predicates {
			if !match(l) {
				continue out
			}
		}
		result = append(result, l)
	}

	sortListings(result, spec)
	return result
}

func zonePredicate(zones []string) func(models.EnrichedListing) bool {
	if len(zones) == 0 {
		return func(models.EnrichedListing) bool { return true }
	}
	set := make(map[string]bool, len(zones))
	for _, z := range zones {
		set[strings.ToLower(strings.TrimSpace(z))] = true
	}
	return func(l models.EnrichedListing) bool {
		return set[strings.ToLower(l.Zone)]
	}
}

// rentRangePredicate matches the median rent inclusively. Rows with a
// missing median are excluded from numeric comparisons, so any active bound
// filters them out.
func rentRangePredicate(min, max *int) func(models.EnrichedListing) bool {
	if min == nil && max == nil {
		return func(models.EnrichedListing) bool { return true }
	}
	return func(l models.EnrichedListing) bool {
		if l.RentMedian1BHK == nil {
			return false
		}
		if min != nil && *l.RentMedian1BHK < *min {
			return false
		}
		if max != nil && *l.RentMedian1BHK > *max {
			return false
		}
		return true
	}
}

func searchPredicate(text string) func(models.EnrichedListing) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return func(models.EnrichedListing) bool { return true }
	}
	return func(l models.EnrichedListing) bool {
		return strings.Contains(strings.ToLower(l.Area), needle)
	}
}

func sortListings(listings []models.EnrichedListing, spec Spec) {
	if spec.GroupByZone {
		sort.SliceStable(listings, func(i, j int) bool {
			if listings[i].Zone != listings[j].Zone {
				return listings[i].Zone < listings[j].Zone
			}
			return ranking.Less(listings[i], listings[j])
		})
		return
	}

	switch spec.Sort {
	case SortByMedianAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			return medianLess(listings[i], listings[j], false)
		})
	case SortByMedianDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return medianLess(listings[i], listings[j], true)
		})
	case SortByArea:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Area < listings[j].Area
		})
	default:
		// SortByRank follows the canonical composite ordering
		sort.SliceStable(listings, func(i, j int) bool {
			return ranking.Less(listings[i], listings[j])
		})
	}
}

// medianLess orders by median rent with missing medians last in either
// direction; area name breaks ties.
func medianLess(a, b models.EnrichedListing, desc bool) bool {
	switch {
	case a.RentMedian1BHK == nil && b.RentMedian1BHK == nil:
		return a.Area < b.Area
	case a.RentMedian1BHK == nil:
		return false
	case b.RentMedian1BHK == nil:
		return true
	case *a.RentMedian1BHK != *b.RentMedian1BHK:
		if desc {
			return *a.RentMedian1BHK > *b.RentMedian1BHK
		}
		return *a.RentMedian1BHK < *b.RentMedian1BHK
	}
	return a.Area < b.Area
}
