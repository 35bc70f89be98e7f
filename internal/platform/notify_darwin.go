//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify displays a notification through macOS Notification Center. The
// icon option has no osascript equivalent and is ignored here.
func Notify(title, body string, opts Options) error {
	osa, err := exec.LookPath("osascript")
	if err != nil {
		return fmt.Errorf("notification center unavailable: %w", err)
	}
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	return exec.Command(osa, "-e", script).Run()
}
