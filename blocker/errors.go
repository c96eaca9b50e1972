package blocker

import "github.com/focusplug/focusplug/internal/apperr"

// ErrEnforcementFailure is logged when the enforcement mechanism fails to
// apply or clear the block list.
var ErrEnforcementFailure = &apperr.Error{
	Message: "unable to %s the block list",
}
