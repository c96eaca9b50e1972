package store

import (
	"time"

	"github.com/focusplug/focusplug/internal/models"
)

// Reader reads raw values from the key-value settings space.
type Reader interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
}

// DB is the database storage interface.
type DB interface {
	Reader
	// Put stores every entry in a single transaction
	Put(entries map[string][]byte) error
	// AddSession records a finished session. A session with the same start
	// time is overwritten.
	AddSession(sess *models.Session) error
	// GetSessions returns the sessions started within [start, end] in
	// chronological order
	GetSessions(start, end time.Time) ([]*models.Session, error)
	// Close ends the database connection
	Close() error
}

// Driver names a storage backend.
type Driver string

const (
	DriverBolt   Driver = "bolt"
	DriverSQLite Driver = "sqlite"
)

// Open connects to the database at path with the given driver.
func Open(driver Driver, path string) (DB, error) {
	switch driver {
	case DriverBolt, "":
		return NewClient(path)
	case DriverSQLite:
		return NewSQLiteClient(path)
	default:
		return nil, errUnknownDriver.Fmt(driver)
	}
}
