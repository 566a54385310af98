package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("lowercases and strips diacritics", func(t *testing.T) {
		assert.Equal(t, "torreon", Normalize("Torreón"))
	})

	t.Run("maps symbols to space and collapses whitespace", func(t *testing.T) {
		assert.Equal(t, "senior backend engineer", Normalize("  Senior, Backend!! Engineer "))
	})

	t.Run("empty and whitespace-only input", func(t *testing.T) {
		assert.Equal(t, "", Normalize(""))
		assert.Equal(t, "", Normalize("   \t\n "))
	})

	t.Run("keeps digits", func(t *testing.T) {
		assert.Equal(t, "c 3 engineer", Normalize("C++ 3 Engineer"))
	})
}

func TestTokenize(t *testing.T) {
	t.Run("unique tokens in first occurrence order", func(t *testing.T) {
		assert.Equal(t, []string{"backend", "engineer"}, Tokenize("Backend Engineer backend"))
	})

	t.Run("empty input yields nil", func(t *testing.T) {
		assert.Nil(t, Tokenize(""))
		assert.Nil(t, Tokenize("   "))
	})
}

func TestEscapeRegex(t *testing.T) {
	t.Run("escapes metacharacters", func(t *testing.T) {
		assert.Equal(t, `c\+\+ \(senior\)`, EscapeRegex("c++ (senior)"))
	})

	t.Run("leaves plain text untouched", func(t *testing.T) {
		assert.Equal(t, "backend engineer", EscapeRegex("backend engineer"))
	})
}

func TestNormalizeSearchTerm(t *testing.T) {
	t.Run("nil for empty or whitespace", func(t *testing.T) {
		assert.Nil(t, NormalizeSearchTerm(""))
		assert.Nil(t, NormalizeSearchTerm("   "))
	})

	t.Run("collapsed lowercase for real input", func(t *testing.T) {
		got := NormalizeSearchTerm("  Backend  Engineer ")
		if assert.NotNil(t, got) {
			assert.Equal(t, "backend engineer", *got)
		}
	})
}
