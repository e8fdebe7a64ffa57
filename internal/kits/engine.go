package kits

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RouterHaus/routerhaus/pkg/models"
)

// Engine evaluates catalog queries. The catalog is loaded once, derived,
// and never mutated afterwards, so an Engine is safe for concurrent
// readers; all mutable view state lives in the Query each caller passes in.
type Engine struct {
	catalog []models.Kit
	defs    []FacetDef
	logger  *zap.Logger
	metrics *Metrics
}

// NewEngine creates an engine over a derived catalog.
func NewEngine(catalog []models.Kit, logger *zap.Logger, metrics *Metrics) *Engine {
	if metrics != nil {
		metrics.CatalogSize.Set(float64(len(catalog)))
	}
	return &Engine{
		catalog: catalog,
		defs:    FacetDefs(),
		logger:  logger,
		metrics: metrics,
	}
}

// Catalog returns a copy of the full derived catalog.
func (e *Engine) Catalog() []models.Kit {
	cp := make([]models.Kit, len(e.catalog))
	copy(cp, e.catalog)
	return cp
}

// Size returns the number of records in the catalog.
func (e *Engine) Size() int { return len(e.catalog) }

// Result is one evaluated catalog view: the page of records plus the
// paging and status metadata the catalog page renders around it.
type Result struct {
	Items      []models.Kit `json:"items"`
	Matched    int          `json:"matched"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PageCount  int          `json:"pageCount"`
	PageSize   int          `json:"pageSize"`
	Buttons    []PageButton `json:"pageButtons"`
	Sort       Strategy     `json:"sort"`
	Query      string       `json:"query"`
	MatchCount string       `json:"matchCount"`
	Status     string       `json:"status"`

	// Empty is set only when at least one constraint is active and nothing
	// matched; an unconstrained empty catalog is not an "empty state".
	Empty bool `json:"empty"`
}

// Evaluate runs the full pipeline for one query: filter, then stable sort,
// then paginate. Every call recomputes from the immutable catalog.
func (e *Engine) Evaluate(q Query) Result {
	start := time.Now()

	filtered := Filter(e.catalog, q.Search, q.Facets, e.defs)
	Sort(filtered, q.Sort)
	page := Paginate(filtered, q.Page, q.PageSize)

	constrained := q.Search != "" || q.Facets.Active()
	canonical := q
	canonical.Page = page.Page

	res := Result{
		Items:      page.Items,
		Matched:    page.Total,
		Total:      len(e.catalog),
		Page:       page.Page,
		PageCount:  page.PageCount,
		PageSize:   q.PageSize,
		Buttons:    PageButtons(page.Page, page.PageCount),
		Sort:       q.Sort,
		Query:      canonical.String(),
		MatchCount: matchCountText(page.Total, len(e.catalog)),
		Status:     statusText(page, q.PageSize),
		Empty:      constrained && page.Total == 0,
	}

	if e.metrics != nil {
		e.metrics.Queries.WithLabelValues(string(effectiveStrategy(q.Sort))).Inc()
		e.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	}
	return res
}

// FacetOptions returns the ordered option lists for every facet. Values are
// collected from the full catalog so deselecting never hides options;
// counts reflect the records matching the query's other constraints.
func (e *Engine) FacetOptions(q Query) map[string][]Option {
	filtered := Filter(e.catalog, q.Search, q.Facets, e.defs)
	opts := Options(e.catalog, e.defs)
	counts := Options(filtered, e.defs)
	for id, list := range opts {
		matched := map[string]int{}
		for _, o := range counts[id] {
			matched[o.Value] = o.Count
		}
		for i := range list {
			list[i].Count = matched[list[i].Value]
		}
	}
	return opts
}

// Defs returns the facet definitions in display order.
func (e *Engine) Defs() []FacetDef { return e.defs }

// Recommendations ranks the full catalog, optionally constrained by quiz
// answers.
func (e *Engine) Recommendations(quiz *models.QuizAnswers, showRecos bool) []models.Kit {
	return Recommend(e.catalog, quiz, showRecos)
}

// Picks returns the shopper's strict-match shortlist.
func (e *Engine) Picks(quiz *models.QuizAnswers, optOut bool) []models.Kit {
	return YourPicks(e.catalog, quiz, optOut)
}

func effectiveStrategy(s Strategy) Strategy {
	for _, known := range Strategies {
		if s == known {
			return s
		}
	}
	return SortRelevance
}

func matchCountText(matched, total int) string {
	if matched == 1 {
		return fmt.Sprintf("1 match / %d", total)
	}
	return fmt.Sprintf("%d matches / %d", matched, total)
}

func statusText(p Page, pageSize int) string {
	if p.Total == 0 {
		return "No results"
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	start := (p.Page-1)*pageSize + 1
	end := p.Page * pageSize
	if end > p.Total {
		end = p.Total
	}
	return fmt.Sprintf("Showing %d-%d of %d", start, end, p.Total)
}
