package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTreeFixture(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestTreeRepository_Load_ParsesTree(t *testing.T) {
	path := writeTreeFixture(t, `{
		"countries": [
			{
				"country": "United States",
				"states": [
					{"state": "Texas", "cities": ["Austin", "Dallas"]}
				]
			},
			{
				"country": "Canada",
				"states": [
					{"state": "Ontario", "cities": ["Toronto"]}
				]
			}
		]
	}`)

	repo := NewTreeRepository(path)
	tree, err := repo.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, tree.Countries, 2)
	assert.Equal(t, "United States", tree.Countries[0].Country)
	require.Len(t, tree.Countries[0].States, 1)
	assert.Equal(t, "Texas", tree.Countries[0].States[0].State)
	assert.Equal(t, []string{"Austin", "Dallas"}, tree.Countries[0].States[0].Cities)
	assert.Equal(t, 2, tree.CountryCount())
}

func TestTreeRepository_Load_MissingFile(t *testing.T) {
	repo := NewTreeRepository(filepath.Join(t.TempDir(), "missing.json"))
	_, err := repo.Load(context.Background())
	assert.Error(t, err)
}

func TestTreeRepository_Load_InvalidJSON(t *testing.T) {
	path := writeTreeFixture(t, `{not valid json`)
	repo := NewTreeRepository(path)
	_, err := repo.Load(context.Background())
	assert.Error(t, err)
}

func TestTreeRepository_Load_CommittedFixture(t *testing.T) {
	repo := NewTreeRepository(filepath.Join("..", "..", "..", "data", "locations", "tree.json"))
	tree, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, tree.Countries)
}
