//go:build darwin

package convert

import (
	"os/exec"
)

// openResult hands file to default application.
func openResult(path string) error {
	return startDetached(exec.Command("open", path))
}
