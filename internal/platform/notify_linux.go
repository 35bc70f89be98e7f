//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const notifyExpireMS = 5000

// Notify raises a desktop notification over the session bus through the
// org.freedesktop.Notifications service. An icon path is passed both as the
// app icon and as the image-path hint, which most daemons render larger.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{}
	if opts.IconPath != "" {
		hints["image-path"] = dbus.MakeVariant(opts.IconPath)
	}
	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		"Inkboard", uint32(0), opts.IconPath, title, body,
		[]string{}, hints, int32(notifyExpireMS))
	return call.Err
}
