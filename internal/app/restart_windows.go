//go:build windows

package app

import (
	"fmt"
	"os"
	"os/exec"
)

// reexec starts a fresh copy of the binary; the caller exits once Run returns.
func reexec() error {
	exe, err := executablePath()
	if err != nil {
		return err
	}
	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("restart %s: %w", exe, err)
	}
	return nil
}
