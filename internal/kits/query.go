package kits

import (
	"net/url"
	"strconv"
	"strings"
)

// Query is the complete filter/sort/page state of a catalog view. It is the
// single value threaded through the pipeline: every request decodes one,
// every response reports the canonical encoding back, so any reachable view
// is shareable as a query string.
type Query struct {
	Search    string
	Sort      Strategy
	Page      int
	PageSize  int
	ShowRecos bool
	Facets    Selection
}

// DefaultQuery returns the state of a freshly opened catalog page.
func DefaultQuery() Query {
	return Query{
		Sort:      SortRelevance,
		Page:      1,
		PageSize:  DefaultPageSize,
		ShowRecos: true,
		Facets:    Selection{},
	}
}

// DecodeQuery reconstructs a Query from URL parameters. Unparseable or
// out-of-range values fall back to their defaults silently; facet CSV lists
// are deduplicated preserving order.
func DecodeQuery(values url.Values) Query {
	q := DefaultQuery()

	if s := values.Get("sort"); s != "" {
		q.Sort = Strategy(s)
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 1 {
		q.Page = page
	}
	if ps, err := strconv.Atoi(values.Get("ps")); err == nil && ps > 0 {
		q.PageSize = ps
	}
	if values.Get("recos") == "0" {
		q.ShowRecos = false
	}
	q.Search = strings.ToLower(strings.TrimSpace(values.Get("q")))

	for _, id := range FacetIDs() {
		raw := values.Get(id)
		if raw == "" {
			continue
		}
		var selected []string
		for _, v := range strings.Split(raw, ",") {
			if v != "" {
				selected = append(selected, v)
			}
		}
		selected = uniq(selected)
		if len(selected) > 0 {
			q.Facets[id] = selected
		}
	}
	return q
}

// Encode serializes the query, omitting every parameter that equals its
// default and every facet with an empty selection. DecodeQuery(Encode(q))
// reproduces q for any reachable state.
func (q Query) Encode() url.Values {
	values := url.Values{}
	if q.Sort != SortRelevance && q.Sort != "" {
		values.Set("sort", string(q.Sort))
	}
	if q.Page > 1 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize != DefaultPageSize && q.PageSize > 0 {
		values.Set("ps", strconv.Itoa(q.PageSize))
	}
	if !q.ShowRecos {
		values.Set("recos", "0")
	}
	if q.Search != "" {
		values.Set("q", q.Search)
	}
	for _, id := range FacetIDs() {
		if selected := q.Facets[id]; len(selected) > 0 {
			values.Set(id, strings.Join(selected, ","))
		}
	}
	return values
}

// String returns the canonical query string, without a leading "?".
// url.Values.Encode sorts keys, so equal states encode equally.
func (q Query) String() string {
	return q.Encode().Encode()
}

// WithQuiz returns a copy of the query with the quiz answers applied the
// way the catalog page does: the coverage, device and use answers replace
// those facets' selections and recommendations are switched on. Other
// facets, search and sort are untouched.
func (q Query) WithQuiz(coverage, devices, use string) Query {
	out := q
	out.Facets = make(Selection, len(q.Facets))
	for id, vals := range q.Facets {
		out.Facets[id] = append([]string(nil), vals...)
	}
	if coverage != "" {
		out.Facets["coverage"] = []string{coverage}
	}
	if devices != "" {
		out.Facets["device"] = []string{devices}
	}
	if use != "" {
		out.Facets["use"] = []string{use}
	}
	out.ShowRecos = true
	out.Page = 1
	return out
}
