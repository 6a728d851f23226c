// SPDX-License-Identifier: MIT

package rasterio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/katalvlaran/hydrodem/raster"
)

var (
	// ErrNotFound indicates a name without a stored grid.
	ErrNotFound = errors.New("rasterio: raster not found")

	// ErrBadName indicates an empty name or one containing a path separator.
	ErrBadName = errors.New("rasterio: invalid raster name")
)

// Ext is the file extension of stored grids.
const Ext = ".msgpack"

// FileStore keeps grids as files in a single directory.
// It is safe for concurrent use as long as callers do not write the same
// name concurrently.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("rasterio: create %s: %w", dir, err)
	}

	return &FileStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}

	return filepath.Join(s.dir, name+Ext), nil
}

// Save writes g under name, replacing any previous grid of that name.
// The file is written to a temporary sibling and renamed into place.
func (s *FileStore) Save(ctx context.Context, name string, g *raster.Grid) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(name)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("rasterio: save %s: %w", name, err)
	}
	if err := Encode(tmp, g); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("rasterio: save %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rasterio: save %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rasterio: save %s: %w", name, err)
	}

	return nil
}

// Load reads the grid stored under name.
func (s *FileStore) Load(ctx context.Context, name string) (*raster.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("rasterio: load %s: %w", name, err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("rasterio: load %s: %w", name, err)
	}

	return g, nil
}

// List returns the stored names in lexical order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("rasterio: list: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(names)

	return names, nil
}
