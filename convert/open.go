//go:build !windows

package convert

import (
	"fmt"
	"os/exec"
)

// startDetached starts opener and does not wait for it, opened application
// outlives the program.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("unable to start %s: %w", cmd.Path, err)
	}
	return cmd.Process.Release()
}
