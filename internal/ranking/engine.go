// Package ranking computes the canonical global ordering of the enriched
// catalog and the dense rank/badge assignment derived from it.
package ranking

import (
	"sort"

	"rentcompare/server/internal/models"
)

// Badge labels, from cheapest rank bucket to most expensive.
const (
	BadgeBudget   = "Budget"
	BadgeValue    = "Value"
	BadgeMid      = "Mid"
	BadgeUpperMid = "Upper Mid"
	BadgePremium  = "Premium"
	BadgeLuxury   = "Luxury"
)

// BadgeForRank maps a dense rank to its bucket label. Ranks <= 0 (unranked
// rows) map to an empty badge.
func BadgeForRank(rank int) string {
	switch {
	case rank <= 0:
		return ""
	case rank <= 15:
		return BadgeBudget
	case rank <= 25:
		return BadgeValue
	case rank <= 40:
		return BadgeMid
	case rank <= 50:
		return BadgeUpperMid
	case rank <= 55:
		return BadgePremium
	default:
		return BadgeLuxury
	}
}

// Less is the composite ordering over the full catalog:
// (median rent, deposit months, proximity score, area name) ascending.
// Rows with a missing median sort after every comparable row.
func Less(a, b models.EnrichedListing) bool {
	switch {
	case a.RentMedian1BHK == nil && b.RentMedian1BHK == nil:
		// both incomparable on median, fall through to the remaining keys
	case a.RentMedian1BHK == nil:
		return false
	case b.RentMedian1BHK == nil:
		return true
	case *a.RentMedian1BHK != *b.RentMedian1BHK:
		return *a.RentMedian1BHK < *b.RentMedian1BHK
	}

	if a.DepositMonthsMin != b.DepositMonthsMin {
		return a.DepositMonthsMin < b.DepositMonthsMin
	}
	if a.ProximityScore != b.ProximityScore {
		return a.ProximityScore < b.ProximityScore
	}
	return a.Area < b.Area
}

// Rank sorts the full enriched set by the composite key and assigns each row
// its dense rank and badge in place.
//
// The dense rank is computed from the median rent alone, not from the full
// composite key: rows with equal medians share a rank even though deposit
// and proximity separate them in the sort order. Rows with a missing median
// stay at rank 0 with an empty badge and end up after every ranked row.
func Rank(listings []models.EnrichedListing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return Less(listings[i], listings[j])
	})

	rank := 0
	prev := 0
	for i := range listings {
		median := listings[i].RentMedian1BHK
		if median == nil {
			listings[i].GlobalRank = 0
			listings[i].Badge = ""
			continue
		}
		if rank == 0 || *median != prev {
			rank++
			prev = *median
		}
		listings[i].GlobalRank = rank
		listings[i].Badge = BadgeForRank(rank)
	}
}
