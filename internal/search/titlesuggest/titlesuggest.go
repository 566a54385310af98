// Package titlesuggest implements the pure ranking half of the job
// title suggester: given title/occurrence groups already matched
// against a partial query by the storage layer, it annotates each with
// a relevance tier and orders them for the bounded top-limit response.
package titlesuggest

import (
	"sort"
	"strings"

	"github.com/avpavlenko/jobboard/internal/search/text"
)

// Group is one distinct title and how many Job rows carry it.
type Group struct {
	Title string
	Count int
}

// Rank annotates each group with relevance (2 when the normalized
// title starts with the normalized q, else 1), sorts by relevance DESC
// then count DESC, and returns the top limit titles only. limit <= 0
// defaults to 10.
func Rank(groups []Group, q string, limit int) []string {
	if limit <= 0 {
		limit = 10
	}

	normQ := text.Normalize(q)

	type scored struct {
		title     string
		relevance int
		count     int
	}
	scoredGroups := make([]scored, 0, len(groups))
	for _, g := range groups {
		relevance := 1
		if strings.HasPrefix(text.Normalize(g.Title), normQ) {
			relevance = 2
		}
		scoredGroups = append(scoredGroups, scored{title: g.Title, relevance: relevance, count: g.Count})
	}

	sort.SliceStable(scoredGroups, func(i, j int) bool {
		if scoredGroups[i].relevance != scoredGroups[j].relevance {
			return scoredGroups[i].relevance > scoredGroups[j].relevance
		}
		return scoredGroups[i].count > scoredGroups[j].count
	})

	if len(scoredGroups) > limit {
		scoredGroups = scoredGroups[:limit]
	}

	titles := make([]string, len(scoredGroups))
	for i, g := range scoredGroups {
		titles[i] = g.title
	}
	return titles
}
