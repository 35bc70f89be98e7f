package platform

// Options carries per-notification settings that only some platforms honour.
type Options struct {
	// IconPath names a PNG to show alongside the notification. Platforms
	// without icon support ignore it.
	IconPath string
}
