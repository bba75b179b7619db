package database

import (
	"context"
	"database/sql"
	"sync"
)

// Handle opens the store on first use and shares the pool afterwards.
type Handle struct {
	opts []Option

	mu sync.Mutex
	db *sql.DB
}

func NewHandle(opts ...Option) *Handle {
	return &Handle{opts: opts}
}

// Get returns the shared pool, connecting if needed. A failed connect is not
// remembered, so the next call tries again.
func (h *Handle) Get(ctx context.Context) (*sql.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}
	db, err := New(ctx, h.opts...)
	if err != nil {
		return nil, err
	}
	h.db = db
	return db, nil
}

// Reset closes the pool; the next Get reconnects.
func (h *Handle) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

func (h *Handle) Close() error {
	return h.Reset()
}
