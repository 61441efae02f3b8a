//go:build !windows

package alarm

import (
	"os"
)

const defaultBeep uint32 = 0

// beep rings the terminal bell; beep codes are Windows-only.
func beep(uint32) error {
	_, err := os.Stderr.Write([]byte("\a"))
	return err
}
