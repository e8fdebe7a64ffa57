package kits

import (
	"slices"
	"sort"

	"github.com/RouterHaus/routerhaus/pkg/models"
)

const (
	// MaxRecommendations caps the recommendation rail.
	MaxRecommendations = 8
	// MaxPicks caps the "Your Picks" rail.
	MaxPicks = 4
)

// QuizMatch reports whether a kit satisfies the quiz answers' coverage,
// device-load and primary-use constraints. Unanswered questions impose no
// constraint. Matching is inclusive: a kit matches if the answer falls
// anywhere inside its applicable envelope.
func QuizMatch(k models.Kit, q models.QuizAnswers) bool {
	if q.Coverage != "" && !slices.Contains(k.ApplicableCoverageBuckets, q.Coverage) {
		return false
	}
	if q.Devices != "" && !slices.Contains(k.ApplicableDeviceLoads, q.Devices) {
		return false
	}
	if q.Use != "" && !slices.Contains(k.ApplicablePrimaryUses, q.Use) {
		return false
	}
	return true
}

// strictQuizMatch is QuizMatch plus the access and budget constraints used
// by "Your Picks": the answered access type must be supported, and the
// kit's price bucket must sit at or below the answered budget bucket. Kits
// with no known price never match a budget-constrained quiz.
func strictQuizMatch(k models.Kit, q models.QuizAnswers) bool {
	if !QuizMatch(k, q) {
		return false
	}
	if q.Access != "" && !slices.Contains(k.AccessSupport, q.Access) {
		return false
	}
	if budget := priceBucketIndex(q.Price); budget >= 0 {
		idx := priceBucketIndex(k.PriceBucket)
		if idx < 0 || idx > budget {
			return false
		}
	}
	return true
}

// Recommend ranks the full catalog and returns at most MaxRecommendations
// entries; the current facet selection plays no part. With quiz answers the
// catalog is first restricted to matching kits; either way the ranking
// cascades Wi-Fi generation, then WAN tier, then relevance score.
func Recommend(catalog []models.Kit, quiz *models.QuizAnswers, showRecos bool) []models.Kit {
	if !showRecos {
		return nil
	}

	pool := make([]models.Kit, 0, len(catalog))
	for _, k := range catalog {
		if quiz != nil && !QuizMatch(k, *quiz) {
			continue
		}
		pool = append(pool, k)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if c := WifiRank(b) - WifiRank(a); c != 0 {
			return c < 0
		}
		if c := WanRank(b) - WanRank(a); c != 0 {
			return c < 0
		}
		return b.Score < a.Score
	})

	if len(pool) > MaxRecommendations {
		pool = pool[:MaxRecommendations]
	}
	return pool
}

// YourPicks returns the shopper's personal shortlist: at most MaxPicks kits
// passing the strict quiz match, ranked purely by relevance score. Without
// quiz answers, or when the shopper has opted out of persistence, there are
// no picks.
func YourPicks(catalog []models.Kit, quiz *models.QuizAnswers, optOut bool) []models.Kit {
	if quiz == nil || optOut {
		return nil
	}

	picks := make([]models.Kit, 0, len(catalog))
	for _, k := range catalog {
		if strictQuizMatch(k, *quiz) {
			picks = append(picks, k)
		}
	}

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[j].Score < picks[i].Score
	})

	if len(picks) > MaxPicks {
		picks = picks[:MaxPicks]
	}
	return picks
}
