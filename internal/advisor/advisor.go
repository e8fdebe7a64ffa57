// Package advisor answers router-shopping questions with a keyword rule
// table: each rule maps a family of phrasings to advice plus a catalog
// query the shopper can jump to.
package advisor

import (
	"strings"

	"go.uber.org/zap"

	"github.com/RouterHaus/routerhaus/internal/kits"
)

// Advice is one answer: a reply line plus the catalog view backing it up.
type Advice struct {
	Reply string `json:"reply"`
	// Query is the canonical query string for the suggested catalog view;
	// empty when the advice has no view to offer.
	Query string `json:"query,omitempty"`
	URL   string `json:"url,omitempty"`
	// Rule names the matched rule, or "default".
	Rule string `json:"rule"`
}

// rule maps trigger keywords to a reply and query builder. The first rule
// whose keyword appears in the normalized question wins, so order encodes
// priority.
type rule struct {
	id       string
	keywords []string
	reply    string
	build    func() kits.Query
}

// Advisor matches questions against the rule table.
type Advisor struct {
	rules  []rule
	logger *zap.Logger
}

// New creates an advisor with the built-in rule table.
func New(logger *zap.Logger) *Advisor {
	return &Advisor{rules: builtinRules(), logger: logger}
}

// Ask answers one question. Unmatched questions get the default advice:
// point at the full catalog and suggest the quiz.
func (a *Advisor) Ask(question string) Advice {
	normalized := normalize(question)

	for _, r := range a.rules {
		for _, kw := range r.keywords {
			if !strings.Contains(normalized, kw) {
				continue
			}
			q := r.build()
			a.logger.Debug("advisor rule matched",
				zap.String("rule", r.id),
				zap.String("keyword", kw),
			)
			return Advice{
				Reply: r.reply,
				Query: q.String(),
				URL:   catalogURL(q),
				Rule:  r.id,
			}
		}
	}

	return Advice{
		Reply: "I can help narrow things down. Tell me about your home — size, " +
			"internet speed, what you do online — or take the quick quiz and " +
			"I'll match you with the right kits.",
		Rule: "default",
	}
}

func catalogURL(q kits.Query) string {
	if s := q.String(); s != "" {
		return "/kits?" + s
	}
	return "/kits"
}

// normalize lowercases and collapses whitespace so keyword matching is
// phrasing-tolerant.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
