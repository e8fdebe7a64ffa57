package kits

import (
	"math"
	"sort"

	"github.com/RouterHaus/routerhaus/pkg/models"
)

// Strategy names a sort order for filtered results.
type Strategy string

const (
	SortRelevance    Strategy = "relevance"
	SortWifiDesc     Strategy = "wifi-desc"
	SortPriceAsc     Strategy = "price-asc"
	SortPriceDesc    Strategy = "price-desc"
	SortCoverageDesc Strategy = "coverage-desc"
	SortWanDesc      Strategy = "wan-desc"
	SortReviewsDesc  Strategy = "reviews-desc"
	SortRatingDesc   Strategy = "rating-desc"
)

// Strategies lists the recognized sort strategies in menu order.
var Strategies = []Strategy{
	SortRelevance, SortWifiDesc, SortPriceAsc, SortPriceDesc,
	SortCoverageDesc, SortWanDesc, SortReviewsDesc, SortRatingDesc,
}

// Sort orders records in place by the named strategy. Unknown strategies
// fall back to relevance. The sort is stable so that equal keys keep their
// filtered order and paging stays deterministic.
func Sort(records []models.Kit, strategy Strategy) {
	cmp := comparator(strategy)
	sort.SliceStable(records, func(i, j int) bool {
		return cmp(records[i], records[j]) < 0
	})
}

// comparator returns a three-way compare for the strategy. Price ascending
// is the shared tiebreaker except where noted in the strategy table.
func comparator(strategy Strategy) func(a, b models.Kit) int {
	switch strategy {
	case SortWifiDesc:
		return func(a, b models.Kit) int {
			if c := WifiRank(b) - WifiRank(a); c != 0 {
				return c
			}
			return cmpPriceAsc(a, b)
		}
	case SortPriceAsc:
		return cmpPriceAsc
	case SortPriceDesc:
		return func(a, b models.Kit) int { return cmpFloat(b.PriceUsd, a.PriceUsd) }
	case SortCoverageDesc:
		return func(a, b models.Kit) int {
			if c := cmpFloat(b.CoverageSqft, a.CoverageSqft); c != 0 {
				return c
			}
			return cmpPriceAsc(a, b)
		}
	case SortWanDesc:
		return func(a, b models.Kit) int {
			if c := WanRank(b) - WanRank(a); c != 0 {
				return c
			}
			return cmpPriceAsc(a, b)
		}
	case SortReviewsDesc:
		return func(a, b models.Kit) int {
			if c := cmpFloat(b.ReviewCount, a.ReviewCount); c != 0 {
				return c
			}
			return cmpPriceAsc(a, b)
		}
	case SortRatingDesc:
		return func(a, b models.Kit) int {
			if c := cmpFloat(b.Rating, a.Rating); c != 0 {
				return c
			}
			if c := cmpFloat(b.ReviewCount, a.ReviewCount); c != 0 {
				return c
			}
			return cmpPriceAsc(a, b)
		}
	default: // relevance
		return func(a, b models.Kit) int {
			if c := b.Score - a.Score; c != 0 {
				return c
			}
			return cmpPriceAsc(a, b)
		}
	}
}

// cmpPriceAsc compares prices ascending with unset (zero) prices sorting
// last.
func cmpPriceAsc(a, b models.Kit) int {
	return cmpFloat(effectivePrice(a), effectivePrice(b))
}

func effectivePrice(k models.Kit) float64 {
	if k.PriceUsd == 0 {
		return math.Inf(1)
	}
	return k.PriceUsd
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
