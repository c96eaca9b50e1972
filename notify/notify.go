// Package notify delivers desktop notifications for focus session transitions
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/focusplug/focusplug/internal/apperr"
)

// ErrNotificationFailure wraps any delivery error. Callers log it and carry
// on.
var ErrNotificationFailure = &apperr.Error{
	Message: "unable to display notification",
}

var errUnknownBackend = &apperr.Error{
	Message: "unknown notification backend: %s",
}

// Notifier displays a notification with a title and body.
type Notifier interface {
	Notify(title, body string) error
}

// Backend names a notification mechanism.
type Backend string

const (
	BackendDesktop Backend = "desktop"
	BackendDBus    Backend = "dbus"
	BackendLog     Backend = "log"
)

// Desktop sends notifications through the platform notification centre.
type Desktop struct {
	// Icon is the path to an image shown with the notification. It may be
	// empty.
	Icon string
}

func (d *Desktop) Notify(title, body string) error {
	err := beeep.Notify(title, body, d.Icon)
	if err != nil {
		return ErrNotificationFailure.Wrap(err)
	}

	return nil
}

// Log writes notifications to the application log.
type Log struct{}

func (Log) Notify(title, body string) error {
	slog.Info("notification", slog.String("title", title), slog.String("body", body))

	return nil
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(string, string) error {
	return nil
}

// New returns the notifier for backend. A disabled configuration yields Nop.
func New(backend Backend, enabled bool, icon string) (Notifier, error) {
	if !enabled {
		return Nop{}, nil
	}

	switch backend {
	case BackendDesktop, "":
		return &Desktop{Icon: icon}, nil
	case BackendDBus:
		return NewDBus("focusplug", icon)
	case BackendLog:
		return Log{}, nil
	default:
		return nil, errUnknownBackend.Fmt(backend)
	}
}
