package style

import (
	"regexp"
	"strings"
)

// detailPatterns and resultsPatterns are the fixed pattern sets spec.md's
// Glossary names for the Rule Classifier (component A). OEM policies may
// extend these via AdditionalDetailExprs/AdditionalResultsExprs.
var detailPatterns = compilePatterns(
	`\.vdp\b`, `\.lvdp\b`, `\.vehicle-detail\b`, `vdp--`, `vehicle-details`,
	`page-template-vehicle`, `single-vehicle`, `vehicle-page`,
)

var resultsPatterns = compilePatterns(
	`\.vrp\b`, `\.lvrp\b`, `\.srp\b`, `\.vehicle-list\b`, `\.vehicle-results\b`,
	`inventory-page`, `page-template-inventory`, `search-results-page`,
)

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// Classifier assigns a Category to each Style Block (spec.md §4.1). It
// is total: every non-empty block receives exactly one category (P2).
type Classifier struct {
	detail  []*regexp.Regexp
	results []*regexp.Regexp
}

// NewClassifier builds a Classifier with the fixed pattern sets plus any
// OEM-supplied additions (spec.md §4.6: policies parameterize D via
// injected patterns).
func NewClassifier(extraDetail, extraResults []*regexp.Regexp) *Classifier {
	c := &Classifier{
		detail:  append(append([]*regexp.Regexp{}, detailPatterns...), extraDetail...),
		results: append(append([]*regexp.Regexp{}, resultsPatterns...), extraResults...),
	}
	return c
}

// ticketKeywordDetail/Results: keywords looked for in a ticket-marker
// comment/body when deciding its category (spec.md §4.1 step 1).
var ticketKeywordDetail = regexp.MustCompile(`(?i)\b(vdp|detail|vehicle-detail)\b`)
var ticketKeywordResults = regexp.MustCompile(`(?i)\b(vrp|srp|results|inventory|vehicle-list)\b`)

// Classify assigns a Category to a single Style Block.
func (c *Classifier) Classify(b Block) Category {
	if b.IsTicket {
		return c.classifyTicket(b)
	}

	if b.IsComment {
		return Interior
	}

	if len(b.Selectors) == 0 {
		return c.classifySelectorless(b)
	}

	return c.classifyBySelectors(b.Selectors)
}

func (c *Classifier) classifyTicket(b Block) Category {
	if ticketKeywordDetail.MatchString(b.Raw) {
		return Detail
	}
	if ticketKeywordResults.MatchString(b.Raw) {
		return Results
	}
	return Interior
}

// classifyBySelectors implements step 3–4: Detail > Results > Interior
// precedence across the full selector list. Any matching selector wins,
// even if other selectors in the same comma list would not (scenario 1
// in spec.md §8: ".vdp-title, .hero" routes entirely to Detail).
func (c *Classifier) classifyBySelectors(selectors []string) Category {
	for _, sel := range selectors {
		for _, p := range c.detail {
			if p.MatchString(sel) {
				return Detail
			}
		}
	}
	for _, sel := range selectors {
		for _, p := range c.results {
			if p.MatchString(sel) {
				return Results
			}
		}
	}
	return Interior
}

// classifySelectorless handles a top-level block with no selector text
// before its first '{' — e.g. a top-level @media whose body is itself
// one or more rule sets. It recursively classifies the inner rules and
// takes the majority category, breaking ties to Interior (spec.md §4.1
// edge-case policy).
func (c *Classifier) classifySelectorless(b Block) Category {
	inner := innerBody(b.Raw)
	innerBlocks := Tokenize(inner)
	if len(innerBlocks) == 0 {
		return Interior
	}

	counts := map[Category]int{}
	for _, ib := range innerBlocks {
		counts[c.Classify(ib)]++
	}

	// Find the true max across all three categories, and how many
	// categories reach it. A tie for the max — including a tie that
	// doesn't involve Interior itself, like {Detail:1, Results:1} —
	// defaults to Interior; only a sole, strict max wins outright.
	max := counts[Interior]
	if counts[Detail] > max {
		max = counts[Detail]
	}
	if counts[Results] > max {
		max = counts[Results]
	}

	winners := 0
	best := Interior
	for _, cat := range []Category{Interior, Detail, Results} {
		if counts[cat] == max {
			winners++
			best = cat
		}
	}
	if winners != 1 {
		return Interior
	}
	return best
}

// innerBody strips the outer "<selector> {" ... trailing "}" wrapper
// from a selector-less top-level block, returning its body text.
func innerBody(raw string) string {
	open := strings.IndexByte(raw, '{')
	closeIdx := strings.LastIndexByte(raw, '}')
	if open == -1 || closeIdx == -1 || closeIdx <= open {
		return ""
	}
	return raw[open+1 : closeIdx]
}
