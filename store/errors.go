package store

import "github.com/focusplug/focusplug/internal/apperr"

var (
	// ErrNotFound is returned by Get for keys that were never written.
	ErrNotFound = &apperr.Error{
		Message: "key not found",
	}

	// ErrPersistenceWriteFailure is logged when a queued write fails. The
	// in-memory state remains the source of truth until the next write
	// succeeds.
	ErrPersistenceWriteFailure = &apperr.Error{
		Message: "persistence write failed",
	}

	errFocusRunning = &apperr.Error{
		Message: "is focusplug already running? Only one instance can be active at a time",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver: %s",
	}

	errDecodeValue = &apperr.Error{
		Message: "unable to decode stored value for %s",
	}
)
