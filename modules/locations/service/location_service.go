// Package service exposes the location tree and the bounded top-K
// auto-suggest search over it.
package service

import (
	"context"
	"sort"
	"strings"

	"github.com/avpavlenko/jobboard/internal/platform/apperror"
	"github.com/avpavlenko/jobboard/internal/search/locations"
	"github.com/avpavlenko/jobboard/internal/search/text"
)

type LocationService struct {
	index   *locations.Index
	weights locations.Weights
}

func NewLocationService(loader locations.Loader) *LocationService {
	return &LocationService{
		index:   locations.New(loader),
		weights: locations.DefaultWeights(),
	}
}

// Countries lists every distinct country name, sorted.
func (s *LocationService) Countries(ctx context.Context) ([]string, error) {
	entries, err := s.index.Entries(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		if e.Kind != locations.KindCountry {
			continue
		}
		if _, ok := seen[e.Country]; ok {
			continue
		}
		seen[e.Country] = struct{}{}
		out = append(out, e.Country)
	}
	sort.Strings(out)
	return out, nil
}

// States lists every state within country, sorted.
func (s *LocationService) States(ctx context.Context, country string) ([]string, error) {
	entries, err := s.index.Entries(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		if e.Kind != locations.KindState || !strings.EqualFold(e.Country, country) {
			continue
		}
		if _, ok := seen[e.State]; ok {
			continue
		}
		seen[e.State] = struct{}{}
		out = append(out, e.State)
	}
	sort.Strings(out)
	return out, nil
}

// Cities lists every city within country/state, sorted.
func (s *LocationService) Cities(ctx context.Context, country, state string) ([]string, error) {
	entries, err := s.index.Entries(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		if e.Kind != locations.KindCity || !strings.EqualFold(e.Country, country) || !strings.EqualFold(e.State, state) {
			continue
		}
		if _, ok := seen[e.City]; ok {
			continue
		}
		seen[e.City] = struct{}{}
		out = append(out, e.City)
	}
	sort.Strings(out)
	return out, nil
}

// Search runs the bounded top-K auto-suggest. An empty query after
// normalization returns an empty result, not an error.
func (s *LocationService) Search(ctx context.Context, q string, k int) ([]locations.Result, error) {
	normQ := text.Normalize(q)
	if normQ == "" {
		return nil, nil
	}

	entries, err := s.index.Entries(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return locations.Search(entries, normQ, k, s.weights), nil
}

// Refresh re-reads the location tree and swaps the in-memory index if
// the country count changed. Ordinary reads (Countries/States/Cities/
// Search) never do this themselves; a periodic caller (see cmd/api)
// is what picks up source edits after first use.
func (s *LocationService) Refresh(ctx context.Context) error {
	_, err := s.index.Refresh(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}
