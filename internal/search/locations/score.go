package locations

import (
	"math"
	"strings"

	"github.com/avpavlenko/jobboard/internal/search/text"
)

// Weights holds the composite location score's contributions.
type Weights struct {
	TypeCountry float64
	TypeState   float64
	TypeCity    float64

	MainExact     float64
	MainPrefix    float64
	MainSubstring float64

	FullExact     float64
	FullPrefix    float64
	FullSubstring float64

	MainCoverageFull   float64
	MainCoverageFactor float64
	AllCoverageFull    float64
	AllCoverageFactor  float64

	PerTokenMain float64
	PerTokenAll  float64

	InOrderFull float64
	InOrderHalf float64

	LengthProximityMax float64

	CityBoostMax float64
}

// DefaultWeights reproduces the composite score contributions.
func DefaultWeights() Weights {
	return Weights{
		TypeCity:    120,
		TypeState:   90,
		TypeCountry: 70,

		MainExact:     250,
		MainPrefix:    180,
		MainSubstring: 120,

		FullExact:     200,
		FullPrefix:    140,
		FullSubstring: 100,

		MainCoverageFull:   150,
		MainCoverageFactor: 90,
		AllCoverageFull:    100,
		AllCoverageFactor:  60,

		PerTokenMain: 35,
		PerTokenAll:  15,

		InOrderFull: 60,
		InOrderHalf: 30,

		LengthProximityMax: 40,

		CityBoostMax: 80,
	}
}

func typeWeight(k Kind, w Weights) float64 {
	switch k {
	case KindCity:
		return w.TypeCity
	case KindState:
		return w.TypeState
	default:
		return w.TypeCountry
	}
}

// Score computes entry's composite relevance against the already
// normalized query q. It returns 0 on the early-reject condition: no
// token overlap and no substring hit anywhere in the entry.
func Score(e Entry, q string, w Weights) float64 {
	qTokens := text.Tokenize(q)
	if len(qTokens) == 0 {
		return 0
	}

	mainSet := toSet(e.TokensMain)
	allSet := toSet(e.TokensAll)

	anyOverlap := false
	for _, t := range qTokens {
		if _, ok := allSet[t]; ok {
			anyOverlap = true
			break
		}
	}
	anySubstring := strings.Contains(e.MainNorm, q) || strings.Contains(e.FullNorm, q)
	if !anyOverlap && !anySubstring {
		return 0
	}

	score := typeWeight(e.Kind, w)

	switch {
	case e.MainNorm == q:
		score += w.MainExact
	case strings.HasPrefix(e.MainNorm, q):
		score += w.MainPrefix
	case strings.Contains(e.MainNorm, q):
		score += w.MainSubstring
	}

	switch {
	case e.FullNorm == q:
		score += w.FullExact
	case strings.HasPrefix(e.FullNorm, q):
		score += w.FullPrefix
	case strings.Contains(e.FullNorm, q):
		score += w.FullSubstring
	}

	rMain := coverage(qTokens, mainSet)
	rAll := coverage(qTokens, allSet)
	if rMain == 1 {
		score += w.MainCoverageFull
	} else {
		score += math.Round(rMain * w.MainCoverageFactor)
	}
	if rAll == 1 {
		score += w.AllCoverageFull
	} else {
		score += math.Round(rAll * w.AllCoverageFactor)
	}

	for _, t := range qTokens {
		if _, ok := mainSet[t]; ok {
			score += w.PerTokenMain
		}
		if _, ok := allSet[t]; ok {
			score += w.PerTokenAll
		}
	}

	switch inOrderMatch(qTokens, e.TokensMain) {
	case fullMatch:
		score += w.InOrderFull
	case halfMatch:
		score += w.InOrderHalf
	}

	lengthDiff := math.Abs(float64(len([]rune(q)) - len([]rune(e.MainNorm))))
	proximity := w.LengthProximityMax - math.Min(lengthDiff, w.LengthProximityMax)
	if proximity > 0 {
		score += proximity
	}

	if e.Kind == KindCity {
		quality := math.Min(rMain, 1)
		score += quality * w.CityBoostMax
	}

	return score
}

type orderMatchLevel int

const (
	noMatch orderMatchLevel = iota
	halfMatch
	fullMatch
)

func inOrderMatch(qTokens, fieldTokens []string) orderMatchLevel {
	idx, matched := 0, 0
	for _, ft := range fieldTokens {
		if idx < len(qTokens) && ft == qTokens[idx] {
			idx++
			matched++
		}
	}
	switch {
	case idx == len(qTokens) && len(qTokens) > 0:
		return fullMatch
	case matched*2 >= len(qTokens):
		return halfMatch
	default:
		return noMatch
	}
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
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
