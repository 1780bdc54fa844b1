//go:build !windows

package app

import (
	"fmt"
	"os"
	"syscall"
)

// reexec replaces the current process with a fresh copy of the binary,
// keeping arguments and environment.
func reexec() error {
	exe, err := executablePath()
	if err != nil {
		return err
	}
	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		return fmt.Errorf("re-exec %s: %w", exe, err)
	}
	return nil
}
