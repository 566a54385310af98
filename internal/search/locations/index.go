package locations

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Loader fetches the current location tree, typically from a JSON
// fixture on disk or a repository-backed cache.
type Loader func(ctx context.Context) (Tree, error)

// Index keeps a flattened, scored-ready snapshot of the location tree
// warm in memory. First use triggers a load; concurrent first callers
// converge on one attempt via singleflight. The index rebuilds only
// when the underlying country count changes, swapping the snapshot by
// reference so in-flight readers keep observing the previous one.
type Index struct {
	load  Loader
	group singleflight.Group

	snapshot atomic.Pointer[snapshot]
}

type snapshot struct {
	entries      []Entry
	countryCount int
}

// New builds an Index around loader. The tree is not loaded until the
// first call to Entries.
func New(loader Loader) *Index {
	return &Index{load: loader}
}

// Entries returns the current flattened index. Once a snapshot exists
// this is a plain atomic load — it never touches the loader again.
// First use (no snapshot yet) builds one, with concurrent first callers
// converging on a single load.
func (idx *Index) Entries(ctx context.Context) ([]Entry, error) {
	if current := idx.snapshot.Load(); current != nil {
		return current.entries, nil
	}
	v, err, _ := idx.group.Do("first", func() (interface{}, error) {
		if current := idx.snapshot.Load(); current != nil {
			return current.entries, nil
		}
		return idx.build(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Entry), nil
}

// Refresh re-reads the source and swaps the snapshot by reference only
// if the underlying country count changed; it is the one path that
// re-reads the loader after first use, for callers (an admin reload
// hook, a periodic ticker) that need to observe source edits.
func (idx *Index) Refresh(ctx context.Context) ([]Entry, error) {
	return idx.build(ctx)
}

func (idx *Index) build(ctx context.Context) ([]Entry, error) {
	current := idx.snapshot.Load()

	tree, err := idx.loadTree(ctx)
	if err != nil {
		if current != nil {
			return current.entries, nil
		}
		return nil, err
	}

	if current != nil && current.countryCount == tree.CountryCount() {
		return current.entries, nil
	}

	next := &snapshot{entries: Flatten(tree), countryCount: tree.CountryCount()}
	idx.snapshot.Store(next)
	return next.entries, nil
}

// loadTree fetches the tree exactly once across concurrent callers
// that race in at the same moment.
func (idx *Index) loadTree(ctx context.Context) (Tree, error) {
	v, err, _ := idx.group.Do("tree", func() (interface{}, error) {
		return idx.load(ctx)
	})
	if err != nil {
		return Tree{}, err
	}
	return v.(Tree), nil
}
