package database

import (
	"errors"
	"sync/atomic"

	"gorm.io/gorm"
)

// ErrNotConnected is returned by components holding a Handle whose
// connection has not been established yet.
var ErrNotConnected = errors.New("database not connected")

// Handle is a swappable reference to the database connection. The pod
// may come up before the database does; everything built over a Handle
// starts working as soon as Set publishes the connection.
type Handle struct {
	db atomic.Pointer[gorm.DB]
}

// NewHandle creates a handle, optionally seeded with a connection.
func NewHandle(db *gorm.DB) *Handle {
	h := &Handle{}
	if db != nil {
		h.db.Store(db)
	}
	return h
}

// Get returns the current connection, nil before the first Set.
func (h *Handle) Get() *gorm.DB {
	return h.db.Load()
}

// Set publishes a connection to every holder of the handle.
func (h *Handle) Set(db *gorm.DB) {
	h.db.Store(db)
}
