package kits

import (
	"strings"

	"github.com/RouterHaus/routerhaus/pkg/models"
)

// Selection maps facet ids to the raw values currently selected for each
// facet. An absent or empty list leaves that facet unconstrained.
type Selection map[string][]string

// Active reports whether any facet has at least one selected value.
func (s Selection) Active() bool {
	for _, vals := range s {
		if len(vals) > 0 {
			return true
		}
	}
	return false
}

// Count returns the total number of selected values across all facets.
func (s Selection) Count() int {
	n := 0
	for _, vals := range s {
		n += len(vals)
	}
	return n
}

// Filter returns the records matching both the free-text search and every
// constrained facet. Facets combine with AND; values within one facet with
// OR. An empty search and empty selection return the full catalog.
func Filter(catalog []models.Kit, search string, sel Selection, defs []FacetDef) []models.Kit {
	tokens := strings.Fields(search)

	out := make([]models.Kit, 0, len(catalog))
	for _, k := range catalog {
		if !matchesSearch(k, tokens) {
			continue
		}
		if !matchesSelection(k, sel, defs) {
			continue
		}
		out = append(out, k)
	}
	return out
}

// matchesSearch requires every token to appear either in the raw searchable
// haystack or, after stripping punctuation from both sides, in the
// normalized haystack. The second check lets "wifi6" match "Wi-Fi 6".
func matchesSearch(k models.Kit, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	hayRaw := searchHaystack(k)
	hayComp := nopunct(hayRaw)
	for _, t := range tokens {
		if strings.Contains(hayRaw, t) {
			continue
		}
		if strings.Contains(hayComp, nopunct(t)) {
			continue
		}
		return false
	}
	return true
}

func searchHaystack(k models.Kit) string {
	std := string(k.WifiStandard)
	parts := []string{
		k.Brand, k.Model,
		"wifi", "wifi-" + std, "wifi " + std, "wifi" + std,
		std,
		k.WanTierLabel,
	}
	if k.MeshReady {
		parts = append(parts, "mesh mesh-ready")
	} else {
		parts = append(parts, "standalone non-mesh")
	}
	parts = append(parts, k.PrimaryUses...)
	parts = append(parts, k.ApplicablePrimaryUses...)
	parts = append(parts, k.UseTags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// nopunct lowercases and strips everything but ASCII letters and digits.
func nopunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func matchesSelection(k models.Kit, sel Selection, defs []FacetDef) bool {
	for _, def := range defs {
		selected := sel[def.ID]
		if len(selected) == 0 {
			continue
		}

		if def.Kind == FacetPredicate {
			if !anyPredicate(k, def, selected) {
				return false
			}
			continue
		}

		if !anyValue(k, def, selected) {
			return false
		}
	}
	return true
}

func anyPredicate(k models.Kit, def FacetDef, selected []string) bool {
	for _, v := range selected {
		pred, ok := def.Predicates[v]
		if ok && pred(k) {
			return true
		}
	}
	return false
}

func anyValue(k models.Kit, def FacetDef, selected []string) bool {
	present := def.Values(k)
	for _, want := range selected {
		for _, have := range present {
			if have == want {
				return true
			}
		}
	}
	return false
}
