package advisor

import (
	"github.com/RouterHaus/routerhaus/internal/kits"
	"github.com/RouterHaus/routerhaus/pkg/models"
)

// builtinRules returns the rule table in priority order: specific intents
// (gaming, budget) sit above broad ones (coverage) so "cheap gaming router"
// resolves to gaming-with-budget rather than plain coverage advice.
func builtinRules() []rule {
	return []rule{
		{
			id:       "gaming",
			keywords: []string{"gaming", "game", "latency", "ping", "esports"},
			reply: "For gaming you want current-generation Wi-Fi and headroom " +
				"on the WAN side. These Wi-Fi 6E and 7 kits are tuned for " +
				"low-latency play.",
			build: func() kits.Query {
				q := kits.DefaultQuery()
				q.Facets = kits.Selection{
					"use":  {"Gaming"},
					"wifi": {"6E", "7"},
				}
				return q
			},
		},
		{
			id:       "budget",
			keywords: []string{"budget", "cheap", "affordable", "under $", "inexpensive", "low cost"},
			reply: "Plenty of solid kits come in under $150. Here they are, " +
				"cheapest first.",
			build: func() kits.Query {
				q := kits.DefaultQuery()
				q.Facets = kits.Selection{"price": {models.PriceBucketBudget}}
				q.Sort = kits.SortPriceAsc
				return q
			},
		},
		{
			id:       "work-from-home",
			keywords: []string{"work from home", "wfh", "home office", "video call", "zoom", "meetings", "vpn"},
			reply: "Working from home rewards a dependable kit: stable " +
				"backhaul for calls and uploads. These are built for it.",
			build: func() kits.Query {
				q := kits.DefaultQuery()
				q.Facets = kits.Selection{"use": {"Work from Home"}}
				return q
			},
		},
		{
			id:       "family",
			keywords: []string{"family", "kids", "parental", "children"},
			reply: "A busy family home wants mesh coverage and capacity for " +
				"everyone's devices at once.",
			build: func() kits.Query {
				q := kits.DefaultQuery()
				q.Facets = kits.Selection{
					"mesh":   {"Mesh-ready"},
					"device": {models.DeviceLoadMedium, models.DeviceLoadLarge},
				}
				return q
			},
		},
		{
			id:       "multi-floor",
			keywords: []string{"multi-floor", "multiple floors", "two story", "three story", "whole home", "dead zone", "dead spot", "large house", "big house", "mesh"},
			reply: "Multiple floors or dead zones usually mean one router " +
				"isn't enough. A mesh kit sized for large homes fixes that.",
			build: func() kits.Query {
				q := kits.DefaultQuery()
				q.Facets = kits.Selection{
					"mesh":     {"Mesh-ready"},
					"coverage": {models.CoverageLarge},
				}
				return q
			},
		},
		{
			id:       "apartment",
			keywords: []string{"apartment", "studio", "small place", "small home", "one bedroom", "dorm"},
			reply: "In an apartment a single well-placed router beats a mesh " +
				"system. These compact kits cover small spaces without the " +
				"overkill.",
			build: func() kits.Query {
				q := kits.DefaultQuery()
				q.Facets = kits.Selection{"coverage": {models.CoverageApartment}}
				return q
			},
		},
		{
			id:       "fast-internet",
			keywords: []string{"fiber", "gigabit", "2 gig", "multi-gig", "fast internet", "fast plan", "speed", "10g", "5 gig"},
			reply: "To actually use a multi-gig plan the router's WAN port " +
				"has to keep up. These kits take 2.5G and faster handoffs.",
			build: func() kits.Query {
				q := kits.DefaultQuery()
				q.Facets = kits.Selection{
					"wan": {models.WanTier10G, models.WanTier5G, models.WanTier2_5G},
				}
				q.Sort = kits.SortWanDesc
				return q
			},
		},
	}
}
