// Package sqlite provides the SQLite-backed repository implementations.
package sqlite

import (
	"database/sql"

	"github.com/creamcroissant/pixelbeacon/internal/repository"
)

// Store wires SQLite-backed repository implementations.
type Store struct {
	db   *sql.DB
	hits repository.HitRepository
}

// NewStore constructs a SQLite-backed repository store.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:   db,
		hits: newHitRepo(db),
	}
}

func (s *Store) Hits() repository.HitRepository {
	return s.hits
}
