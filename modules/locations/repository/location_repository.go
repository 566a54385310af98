// Package repository loads the location tree fixture the locations
// module serves from and bridges it to internal/search/locations.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/avpavlenko/jobboard/internal/search/locations"
)

// TreeRepository loads the location tree from a JSON file on disk.
type TreeRepository struct {
	path string
}

func NewTreeRepository(path string) *TreeRepository {
	return &TreeRepository{path: path}
}

// Load satisfies locations.Loader.
func (r *TreeRepository) Load(ctx context.Context) (locations.Tree, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return locations.Tree{}, fmt.Errorf("reading location tree %s: %w", r.path, err)
	}

	var tree locations.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return locations.Tree{}, fmt.Errorf("parsing location tree %s: %w", r.path, err)
	}
	return tree, nil
}
