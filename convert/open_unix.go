//go:build !windows && !darwin

package convert

import (
	"os/exec"
)

// openResult hands file to desktop default application.
func openResult(path string) error {
	return startDetached(exec.Command("xdg-open", path))
}
