//go:build windows

package convert

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// openResult hands file to the application associated with its extension.
func openResult(path string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	if err := windows.ShellExecute(0, verb, file, nil, nil, windows.SW_SHOWNORMAL); err != nil {
		return fmt.Errorf("unable to open %s: %w", path, err)
	}
	return nil
}
