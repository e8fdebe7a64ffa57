package kits

import (
	"slices"
	"sort"
	"strconv"

	"github.com/RouterHaus/routerhaus/pkg/models"
)

// FacetKind distinguishes the two facet shapes: simple facets match on the
// values their extractor returns; predicate facets match through a named
// boolean predicate per selectable value.
type FacetKind int

const (
	FacetSimple FacetKind = iota
	FacetPredicate
)

// FacetDef describes one filterable dimension of the catalog.
type FacetDef struct {
	ID    string
	Label string
	Kind  FacetKind

	// Values extracts the value(s) a kit presents for this facet. Used for
	// option collection, and for matching on simple facets.
	Values func(models.Kit) []string

	// Predicates maps selectable values to match predicates. Only set for
	// FacetPredicate facets.
	Predicates map[string]func(models.Kit) bool

	// Order fixes the display order of known values; observed values not
	// listed here follow, sorted.
	Order []string
}

// Option is one selectable facet value, with the number of records
// presenting it in the slice the options were collected from.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FacetDefs returns the catalog's facet definitions in display order.
func FacetDefs() []FacetDef {
	return []FacetDef{
		{
			ID: "brand", Label: "Brand",
			Values: func(k models.Kit) []string { return nonEmpty(k.Brand) },
		},
		{
			ID: "wifi", Label: "Wi-Fi",
			Values: func(k models.Kit) []string { return nonEmpty(string(k.WifiStandard)) },
			Order:  []string{"7", "6E", "6", "5"},
		},
		{
			ID: "bands", Label: "Bands",
			Values: func(k models.Kit) []string { return k.WifiBands },
			Order:  []string{"2.4", "5", "6"},
		},
		{
			ID: "mesh", Label: "Mesh", Kind: FacetPredicate,
			Values: func(k models.Kit) []string {
				if k.MeshReady {
					return []string{"Mesh-ready"}
				}
				return []string{"Standalone"}
			},
			Predicates: map[string]func(models.Kit) bool{
				"Mesh-ready": func(k models.Kit) bool { return k.MeshReady },
				"Standalone": func(k models.Kit) bool { return !k.MeshReady },
			},
			Order: []string{"Mesh-ready", "Standalone"},
		},
		{
			ID: "wan", Label: "WAN Tier",
			Values: func(k models.Kit) []string {
				if len(k.ApplicableWanTiers) > 0 {
					return k.ApplicableWanTiers
				}
				return nonEmpty(k.WanTierLabel)
			},
			Order: []string{"10G", "5G", "2.5G", "≤1G"},
		},
		{
			ID: "lanCount", Label: "LAN Ports",
			Values: func(k models.Kit) []string {
				if k.LanCount == nil {
					return nil
				}
				return []string{strconv.Itoa(*k.LanCount)}
			},
		},
		{
			ID: "multiGigLan", Label: "Multi-Gig LAN",
			Values: yesNo(func(k models.Kit) bool { return k.MultiGigLan }),
			Order:  []string{"Yes", "No"},
		},
		{
			ID: "usb", Label: "USB",
			Values: yesNo(func(k models.Kit) bool { return k.USB }),
			Order:  []string{"Yes", "No"},
		},
		{
			ID: "coverage", Label: "Coverage",
			Values: func(k models.Kit) []string {
				if len(k.ApplicableCoverageBuckets) > 0 {
					return k.ApplicableCoverageBuckets
				}
				return nonEmpty(k.CoverageBucket)
			},
			Order: models.CoverageBuckets,
		},
		{
			ID: "device", Label: "Device Load",
			Values: func(k models.Kit) []string {
				if len(k.ApplicableDeviceLoads) > 0 {
					return k.ApplicableDeviceLoads
				}
				return nonEmpty(k.DeviceLoad)
			},
			Order: models.DeviceLoads,
		},
		{
			ID: "use", Label: "Primary Use",
			Values: func(k models.Kit) []string {
				vals := make([]string, 0, len(k.PrimaryUses)+len(k.ApplicablePrimaryUses)+1)
				vals = append(vals, k.PrimaryUses...)
				vals = append(vals, k.ApplicablePrimaryUses...)
				vals = append(vals, k.PrimaryUse)
				return uniq(vals)
			},
		},
		{
			ID: "access", Label: "Access",
			Values: func(k models.Kit) []string { return k.AccessSupport },
			Order:  []string{"Cable", "Fiber", "FixedWireless5G", "Satellite", "DSL"},
		},
		{
			ID: "price", Label: "Price",
			Values: func(k models.Kit) []string {
				if k.PriceBucket == models.PriceBucketNA {
					return nil
				}
				return nonEmpty(k.PriceBucket)
			},
			Order: models.PriceBuckets,
		},
	}
}

// FacetIDs returns the facet ids in display order.
func FacetIDs() []string {
	defs := FacetDefs()
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID
	}
	return ids
}

// Options collects the distinct values the given records present for each
// facet. Values named in a facet's fixed order come first, in that order;
// the rest follow sorted lexicographically so option lists are stable
// regardless of catalog order.
func Options(records []models.Kit, defs []FacetDef) map[string][]Option {
	counts := make(map[string]map[string]int, len(defs))
	for _, def := range defs {
		counts[def.ID] = make(map[string]int)
	}
	for _, k := range records {
		for _, def := range defs {
			seen := map[string]struct{}{}
			for _, v := range def.Values(k) {
				if v == "" {
					continue
				}
				if _, dup := seen[v]; dup {
					continue
				}
				seen[v] = struct{}{}
				counts[def.ID][v]++
			}
		}
	}

	opts := make(map[string][]Option, len(defs))
	for _, def := range defs {
		observed := counts[def.ID]
		ordered := make([]string, 0, len(observed))
		for _, v := range def.Order {
			if _, ok := observed[v]; ok {
				ordered = append(ordered, v)
			}
		}
		var rest []string
		for v := range observed {
			if !slices.Contains(ordered, v) {
				rest = append(rest, v)
			}
		}
		sort.Strings(rest)
		ordered = append(ordered, rest...)

		list := make([]Option, len(ordered))
		for i, v := range ordered {
			list[i] = Option{Value: v, Label: v, Count: observed[v]}
		}
		opts[def.ID] = list
	}
	return opts
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func yesNo(pred func(models.Kit) bool) func(models.Kit) []string {
	return func(k models.Kit) []string {
		if pred(k) {
			return []string{"Yes"}
		}
		return []string{"No"}
	}
}
