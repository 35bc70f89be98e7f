//go:build !linux && !darwin && !windows

package platform

// Notify silently discards notifications on platforms without a known
// notification service.
func Notify(title, body string, opts Options) error {
	return nil
}
