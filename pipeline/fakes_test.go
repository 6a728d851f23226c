// SPDX-License-Identifier: MIT

package pipeline_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydrodem/catalog"
	"github.com/katalvlaran/hydrodem/raster"
)

const nd = raster.DefaultNoData

// memStore is an in-memory RasterStore with per-name injected failures.
type memStore struct {
	mu    sync.Mutex
	grids map[string]*raster.Grid
	fail  map[string]error
}

func newMemStore() *memStore {
	return &memStore{grids: map[string]*raster.Grid{}, fail: map[string]error{}}
}

func (s *memStore) Save(_ context.Context, name string, g *raster.Grid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[name]; err != nil {
		return err
	}
	s.grids[name] = g.Clone()

	return nil
}

func (s *memStore) Load(_ context.Context, name string) (*raster.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.grids[name]
	if !ok {
		return nil, fmt.Errorf("memstore: %s not found", name)
	}

	return g, nil
}

// recorder is a Polygonizer that remembers what it was asked to convert.
type recorder struct {
	mu    sync.Mutex
	names map[string]bool
}

func (p *recorder) RasterToPolygon(_ context.Context, _ *raster.Grid, name string, _ bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.names == nil {
		p.names = map[string]bool{}
	}
	p.names[name] = true

	return nil
}

func memCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return c
}

// pitGrid is a 5×5 surface whose centre pit spills east at elevation 5.
func pitGrid(t testing.TB) *raster.Grid {
	t.Helper()
	g, err := raster.FromRows([][]float64{
		{9, 9, 9, 9, 9},
		{9, 6, 6, 6, 9},
		{9, 6, 1, 5, 4},
		{9, 6, 6, 6, 9},
		{9, 9, 9, 9, 9},
	})
	require.NoError(t, err)

	return g
}
