package store

import (
	"errors"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
)

// ErrNoSnapshot is returned when no check cycle has ever been run.
// Callers must surface this and tell the user to run a check, rather than showing
// an empty result that could be mistaken for "no updates".
var ErrNoSnapshot = errors.New("no update snapshot found: run a check first")

// Store persists the catalog, the update snapshot and the read ledger.
// Every save is wholesale: one transaction deletes and rewrites the tables
// involved, so the persisted state always matches one full in-memory value and
// never a partial merge.
type Store struct {
	db  *sqlx.DB
	log *log.Logger
}

// New creates a Store on top of a database connection
func New(db *sqlx.DB) *Store {
	return &Store{
		db:  db,
		log: log.New(os.Stdout, "store: ", log.Ldate|log.Ltime|log.LUTC),
	}
}
