//go:build windows

package alarm

import (
	"golang.org/x/sys/windows"
)

// MB_OK, the system default sound.
const defaultBeep uint32 = 0x00000000

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procMessageBeep = user32.NewProc("MessageBeep")
)

// beep plays a system sound via user32!MessageBeep.
func beep(code uint32) error {
	if err := procMessageBeep.Find(); err != nil {
		return err
	}
	r1, _, err := procMessageBeep.Call(uintptr(code))
	if r1 == 0 {
		return err
	}
	return nil
}
