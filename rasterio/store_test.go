// SPDX-License-Identifier: MIT

package rasterio_test

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/hydrodem/raster"
	"github.com/katalvlaran/hydrodem/rasterio"
)

func sample(t *testing.T, opts ...raster.Option) *raster.Grid {
	t.Helper()
	opts = append([]raster.Option{raster.WithCellSize(30), raster.WithOrigin(500000, 4200000)}, opts...)
	g, err := raster.New(2, 3, opts...)
	require.NoError(t, err)
	for i, v := range []float64{1.5, 2, 3} {
		g.SetCell(i, v)
	}

	return g
}

func assertSameGrid(t *testing.T, want, got *raster.Grid) {
	t.Helper()
	require.NoError(t, raster.SameShape(want, got))
	assert.Equal(t, want.CellSize(), got.CellSize())
	wx, wy := want.Origin()
	gx, gy := got.Origin()
	assert.Equal(t, wx, gx)
	assert.Equal(t, wy, gy)
	for i := 0; i < want.Len(); i++ {
		assert.Equal(t, want.Valid(i), got.Valid(i), "cell %d validity", i)
		if want.Valid(i) {
			assert.Equal(t, want.Cell(i), got.Cell(i), "cell %d", i)
		}
	}
}

func TestFileStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s, err := rasterio.NewFileStore(t.TempDir())
	require.NoError(t, err)

	g := sample(t)
	require.NoError(t, s.Save(ctx, "dem_fill", g))

	got, err := s.Load(ctx, "dem_fill")
	require.NoError(t, err)
	assertSameGrid(t, g, got)
	assert.Equal(t, g.NoData(), got.NoData())

	// overwrite
	g.SetCell(5, 9)
	require.NoError(t, s.Save(ctx, "dem_fill", g))
	got, err = s.Load(ctx, "dem_fill")
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.Cell(5))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dem_fill"}, names)
}

func TestFileStoreNaNNoData(t *testing.T) {
	ctx := context.Background()
	s, err := rasterio.NewFileStore(t.TempDir())
	require.NoError(t, err)

	g := sample(t, raster.WithNoData(math.NaN()))
	require.NoError(t, s.Save(ctx, "nan", g))
	got, err := s.Load(ctx, "nan")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.NoData()))
	assertSameGrid(t, g, got)
}

func TestFileStoreErrors(t *testing.T) {
	ctx := context.Background()
	s, err := rasterio.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load(ctx, "missing")
	assert.ErrorIs(t, err, rasterio.ErrNotFound)

	for _, name := range []string{"", "a/b", `a\b`, ".."} {
		assert.ErrorIs(t, s.Save(ctx, name, sample(t)), rasterio.ErrBadName, "name %q", name)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, s.Save(cancelled, "x", sample(t)), context.Canceled)
	_, err = s.Load(cancelled, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeCorrupt(t *testing.T) {
	_, err := rasterio.Decode(bytes.NewReader([]byte{0xc1}))
	assert.ErrorIs(t, err, rasterio.ErrCorrupt)

	var buf bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&buf).Encode(map[string]interface{}{
		"version": 1, "rows": 2, "cols": 2, "cell_size": 1.0, "cells": []float64{1, 2, 3},
	}))
	_, err = rasterio.Decode(&buf)
	assert.ErrorIs(t, err, rasterio.ErrCorrupt)

	buf.Reset()
	require.NoError(t, msgpack.NewEncoder(&buf).Encode(map[string]interface{}{
		"version": 99, "rows": 1, "cols": 1, "cell_size": 1.0, "cells": []float64{1},
	}))
	_, err = rasterio.Decode(&buf)
	assert.ErrorIs(t, err, rasterio.ErrCorrupt)
}
