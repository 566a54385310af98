package locations

import "github.com/avpavlenko/jobboard/internal/search/text"

// Kind is the entity kind a flattened entry represents.
type Kind string

const (
	KindCountry Kind = "country"
	KindState   Kind = "state"
	KindCity    Kind = "city"
)

// Entry is one flattened row of the location index: a single
// country, state, or city, carrying both its own normalized main
// field and the normalized full path for whole-path matching.
type Entry struct {
	Kind    Kind
	Country string
	State   string
	City    string

	Main       string
	MainNorm   string
	FullNorm   string
	TokensMain []string
	TokensAll  []string
}

func newEntry(kind Kind, country, state, city, main string) Entry {
	full := country
	if state != "" {
		full += " " + state
	}
	if city != "" {
		full += " " + city
	}
	return Entry{
		Kind:       kind,
		Country:    country,
		State:      state,
		City:       city,
		Main:       main,
		MainNorm:   text.Normalize(main),
		FullNorm:   text.Normalize(full),
		TokensMain: text.Tokenize(main),
		TokensAll:  text.Tokenize(full),
	}
}

// Flatten builds the index entries for every country, state, and city
// in t, one entry per node.
func Flatten(t Tree) []Entry {
	entries := make([]Entry, 0, len(t.Countries)*4)
	for _, c := range t.Countries {
		entries = append(entries, newEntry(KindCountry, c.Country, "", "", c.Country))
		for _, s := range c.States {
			entries = append(entries, newEntry(KindState, c.Country, s.State, "", s.State))
			for _, city := range s.Cities {
				entries = append(entries, newEntry(KindCity, c.Country, s.State, city, city))
			}
		}
	}
	return entries
}
