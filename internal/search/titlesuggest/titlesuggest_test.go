package titlesuggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank_PrefixBeatsSubstringRegardlessOfCount(t *testing.T) {
	groups := []Group{
		{Title: "Senior Backend Engineer", Count: 50},
		{Title: "Backend Developer", Count: 5},
	}

	ranked := Rank(groups, "backend", 10)

	assert.Equal(t, []string{"Backend Developer", "Senior Backend Engineer"}, ranked)
}

func TestRank_TiesBrokenByCount(t *testing.T) {
	groups := []Group{
		{Title: "Backend Engineer", Count: 3},
		{Title: "Backend Developer", Count: 9},
	}

	ranked := Rank(groups, "backend", 10)

	assert.Equal(t, "Backend Developer", ranked[0])
}

func TestRank_BoundedToLimit(t *testing.T) {
	groups := []Group{
		{Title: "A Backend", Count: 1},
		{Title: "B Backend", Count: 2},
		{Title: "C Backend", Count: 3},
	}

	assert.Len(t, Rank(groups, "backend", 2), 2)
}

func TestRank_DefaultsLimitWhenNonPositive(t *testing.T) {
	groups := make([]Group, 15)
	for i := range groups {
		groups[i] = Group{Title: "Backend Role", Count: i}
	}

	assert.Len(t, Rank(groups, "backend", 0), 10)
}
