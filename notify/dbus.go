package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = "/org/freedesktop/Notifications"
	notificationsMethod = "org.freedesktop.Notifications.Notify"

	// expireTimeout is in milliseconds.
	expireTimeout int32 = 5000
)

// DBus talks to the freedesktop notification service on the session bus.
type DBus struct {
	conn    *dbus.Conn
	appName string
	icon    string
}

// NewDBus connects to the session bus.
func NewDBus(appName, icon string) (*DBus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	return &DBus{
		conn:    conn,
		appName: appName,
		icon:    icon,
	}, nil
}

func (d *DBus) Notify(title, body string) error {
	obj := d.conn.Object(notificationsDest, dbus.ObjectPath(notificationsPath))

	call := obj.Call(
		notificationsMethod,
		0,
		d.appName,
		uint32(0),
		d.icon,
		title,
		body,
		[]string{},
		map[string]dbus.Variant{},
		expireTimeout,
	)
	if call.Err != nil {
		return ErrNotificationFailure.Wrap(call.Err)
	}

	return nil
}

// Close releases the bus connection.
func (d *DBus) Close() error {
	return d.conn.Close()
}
