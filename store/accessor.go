package store

import (
	"context"
	"sync"
)

// OpenFunc opens a Table for a config.
type OpenFunc func(ctx context.Context, cfg Config) (*Table, error)

// Accessor resolves the process-wide Table on first use and caches it.
// A failed open is not cached; the next call tries again.
type Accessor struct {
	cfg  Config
	open OpenFunc

	mu    sync.Mutex
	table *Table
}

// NewAccessor creates an Accessor that opens the table with Open.
func NewAccessor(cfg Config) *Accessor {
	return NewAccessorWithOpener(cfg, Open)
}

// NewAccessorWithOpener creates an Accessor with a custom open function.
func NewAccessorWithOpener(cfg Config, open OpenFunc) *Accessor {
	if open == nil {
		open = Open
	}
	return &Accessor{cfg: cfg, open: open}
}

// Table returns the cached Table, opening it on the first successful call.
func (a *Accessor) Table(ctx context.Context) (*Table, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.table != nil {
		return a.table, nil
	}
	t, err := a.open(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	a.table = t
	return t, nil
}
