// Package locations implements the in-memory location auto-suggest
// subsystem: a flattened index built from a country→state→city tree,
// scored with a composite weighting biased by entity type, and served
// through a bounded min-heap top-K.
package locations

// Tree is the country→state→city document set, the sole source for
// location search. Country names are unique and serve as the tree's key.
type Tree struct {
	Countries []Country `json:"countries"`
}

// Country holds one country's states.
type Country struct {
	Country string  `json:"country"`
	States  []State `json:"states"`
}

// State holds one state's cities.
type State struct {
	State  string   `json:"state"`
	Cities []string `json:"cities"`
}

// CountryCount reports the number of countries currently loaded —
// the signal the index watches to decide whether it must rebuild.
func (t Tree) CountryCount() int {
	return len(t.Countries)
}
