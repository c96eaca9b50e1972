package timer

import "github.com/focusplug/focusplug/internal/apperr"

// ErrInvalidDuration rejects a non-positive session length.
var ErrInvalidDuration = &apperr.Error{
	Message: "invalid duration: %d seconds (must be greater than zero)",
}
