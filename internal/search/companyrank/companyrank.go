// Package companyrank implements the in-memory composite company score:
// a weighted sum of exact/prefix/substring hits, token-coverage ratios,
// in-order bonuses, and length proximity, computed after a base-filter
// fetch from storage. The weighted-struct idiom mirrors the scoring
// configs used for other in-process rankers in this codebase.
package companyrank

import (
	"math"
	"strings"

	"github.com/avpavlenko/jobboard/internal/search/text"
)

// Weights holds every scoring contribution as an overridable constant.
type Weights struct {
	NameExact      float64
	NamePrefix     float64
	NameSubstring  float64
	LocationExact  float64
	LocationPrefix float64
	LocSubstring   float64
	DescSubstring  float64

	NameCoverageFull    float64
	NameCoverageFactor  float64
	DescCoverageFactor  float64
	LocCoverageFactor   float64
	AllCoverageFull     float64
	AllCoverageFactor   float64

	PerTokenName float64
	PerTokenLoc  float64
	PerTokenDesc float64

	InOrderFull float64
	InOrderHalf float64

	LengthProximityMax float64

	TokenSetEquality float64
}

// DefaultWeights reproduces the weighting scheme used by the company
// ranker: name/location matches dominate, token coverage and in-order
// bonuses reward multi-word queries, and a length-proximity term
// softly favors companies whose name length matches the query's.
func DefaultWeights() Weights {
	return Weights{
		NameExact:      400,
		NamePrefix:     260,
		NameSubstring:  180,
		LocationExact:  220,
		LocationPrefix: 170,
		LocSubstring:   140,
		DescSubstring:  90,

		NameCoverageFull:   200,
		NameCoverageFactor: 140,
		DescCoverageFactor: 60,
		LocCoverageFactor:  160,
		AllCoverageFull:    150,
		AllCoverageFactor:  120,

		PerTokenName: 35,
		PerTokenLoc:  30,
		PerTokenDesc: 15,

		InOrderFull: 100,
		InOrderHalf: 50,

		LengthProximityMax: 60,

		TokenSetEquality: 180,
	}
}

// Candidate is the subset of a Company the scorer needs.
type Candidate struct {
	Name        string
	Description string
	Country     string
	State       string
	City        string
}

func (c Candidate) location() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Country, c.State, c.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Score computes the composite relevance score of candidate against the
// already-normalized query q. It returns 0 when the candidate has
// neither token overlap nor any substring hit anywhere — the early
// reject described by the specification.
func Score(c Candidate, q string, w Weights) float64 {
	qTokens := text.Tokenize(q)
	if len(qTokens) == 0 {
		return 0
	}

	name := text.Normalize(c.Name)
	desc := text.Normalize(c.Description)
	loc := text.Normalize(c.location())

	nameTokens := tokenSet(name)
	descTokens := tokenSet(desc)
	locTokens := tokenSet(loc)
	allTokens := union(nameTokens, descTokens, locTokens)

	anyTokenOverlap := false
	for _, t := range qTokens {
		if _, ok := allTokens[t]; ok {
			anyTokenOverlap = true
			break
		}
	}
	anySubstring := strings.Contains(name, q) || strings.Contains(desc, q) || strings.Contains(loc, q)
	if !anyTokenOverlap && !anySubstring {
		return 0
	}

	var score float64

	// Name match: mutually exclusive, highest wins.
	switch {
	case name == q:
		score += w.NameExact
	case strings.HasPrefix(name, q):
		score += w.NamePrefix
	case strings.Contains(name, q):
		score += w.NameSubstring
	}

	// Location match.
	switch {
	case loc == q:
		score += w.LocationExact
	case strings.HasPrefix(loc, q):
		score += w.LocationPrefix
	case strings.Contains(loc, q):
		score += w.LocSubstring
	}

	if strings.Contains(desc, q) {
		score += w.DescSubstring
	}

	unique := len(qTokens)
	rName := coverage(qTokens, nameTokens)
	rDesc := coverage(qTokens, descTokens)
	rLoc := coverage(qTokens, locTokens)
	rAll := coverage(qTokens, allTokens)

	if rName == 1 {
		score += w.NameCoverageFull
	} else {
		score += math.Round(rName * w.NameCoverageFactor)
	}
	score += math.Round(rDesc * w.DescCoverageFactor)
	score += math.Round(rLoc * w.LocCoverageFactor)
	if rAll == 1 {
		score += w.AllCoverageFull
	} else {
		score += math.Round(rAll * w.AllCoverageFactor)
	}
	_ = unique

	for _, t := range qTokens {
		if _, ok := nameTokens[t]; ok {
			score += w.PerTokenName
		}
		if _, ok := locTokens[t]; ok {
			score += w.PerTokenLoc
		}
		if _, ok := descTokens[t]; ok {
			score += w.PerTokenDesc
		}
	}

	switch inOrderRatio(qTokens, text.Tokenize(c.Name)) {
	case 1:
		score += w.InOrderFull
	default:
		if inOrderMatchesAtLeastHalf(qTokens, text.Tokenize(c.Name)) {
			score += w.InOrderHalf
		}
	}

	lengthDiff := math.Abs(float64(len([]rune(q)) - len([]rune(name))))
	proximity := w.LengthProximityMax - math.Min(lengthDiff, w.LengthProximityMax)
	if proximity > 0 {
		score += proximity
	}

	if tokenSetEqual(qTokens, text.Tokenize(c.Name)) {
		score += w.TokenSetEquality
	}

	return score
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range text.Tokenize(s) {
		set[t] = struct{}{}
	}
	return set
}

func union(sets ...map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for _, s := range sets {
		for k := range s {
			out[k] = struct{}{}
		}
	}
	return out
}

func coverage(qTokens []string, field map[string]struct{}) float64 {
	if len(qTokens) == 0 {
		return 0
	}
	matches := 0
	for _, t := range qTokens {
		if _, ok := field[t]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(qTokens))
}

// inOrderRatio returns 1 when every query token appears in fieldTokens
// in the same relative order, 0 otherwise (the caller separately checks
// the half-match threshold).
func inOrderRatio(qTokens, fieldTokens []string) int {
	idx := 0
	for _, ft := range fieldTokens {
		if idx < len(qTokens) && ft == qTokens[idx] {
			idx++
		}
	}
	if idx == len(qTokens) {
		return 1
	}
	return 0
}

func inOrderMatchesAtLeastHalf(qTokens, fieldTokens []string) bool {
	idx := 0
	matched := 0
	for _, ft := range fieldTokens {
		if idx < len(qTokens) && ft == qTokens[idx] {
			idx++
			matched++
		}
	}
	return matched*2 >= len(qTokens)
}

func tokenSetEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	for _, t := range b {
		if _, ok := setA[t]; !ok {
			return false
		}
	}
	return true
}
