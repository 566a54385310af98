package companyrank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_ExactNameBeatsPrefixName(t *testing.T) {
	w := DefaultWeights()

	google := Candidate{Name: "Google"}
	googleCloud := Candidate{Name: "Google Cloud"}

	exact := Score(google, "google", w)
	prefix := Score(googleCloud, "google", w)

	assert.Greater(t, exact, prefix, "exact name match must outrank a prefix match")
}

func TestScore_MultiTokenQueryFavorsTokenSetEquality(t *testing.T) {
	w := DefaultWeights()

	googleCloud := Candidate{Name: "Google Cloud"}

	score := Score(googleCloud, "google cloud", w)

	assert.Greater(t, score, 0.0)
}

func TestScore_EarlyRejectReturnsZero(t *testing.T) {
	w := DefaultWeights()

	c := Candidate{Name: "Acme Robotics", Description: "builds robots", Country: "Germany"}

	assert.Equal(t, 0.0, Score(c, "zzzzz", w))
}

func TestScore_LocationMatchContributes(t *testing.T) {
	w := DefaultWeights()

	c := Candidate{Name: "Acme", Country: "Mexico", State: "Coahuila", City: "Torreon"}

	assert.Greater(t, Score(c, "torreon", w), 0.0)
}

func TestScore_DescriptionSubstringContributes(t *testing.T) {
	w := DefaultWeights()

	c := Candidate{Name: "Acme", Description: "we build distributed systems"}

	assert.Greater(t, Score(c, "distributed", w), 0.0)
}

func TestRank_DropsNonPositiveAndSortsDescending(t *testing.T) {
	items := []Candidate{
		{Name: "Google Cloud"},
		{Name: "Google"},
		{Name: "Unrelated Co"},
	}
	w := DefaultWeights()

	ranked := Rank(items, func(c Candidate) float64 {
		return Score(c, "google", w)
	}, func(a, b Scored[Candidate]) bool {
		return a.Score > b.Score
	})

	if assert.Len(t, ranked, 2) {
		assert.Equal(t, "Google", ranked[0].Item.Name)
		assert.Equal(t, "Google Cloud", ranked[1].Item.Name)
	}
}
