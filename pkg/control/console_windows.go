//go:build windows

package control

import (
	"golang.org/x/sys/windows"

	"github.com/arthur-debert/lazypony/pkg/errors"
)

var (
	kernel32                    = windows.NewLazySystemDLL("kernel32.dll")
	procSetConsoleTextAttribute = kernel32.NewProc("SetConsoleTextAttribute")
)

type windowsConsole struct {
	handle windows.Handle
}

// OpenConsole returns the console attached to standard output.
func OpenConsole() (Console, error) {
	h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConsole, "failed to get standard output handle")
	}
	c := &windowsConsole{handle: h}
	if _, err := c.Attributes(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *windowsConsole) Attributes() (uint16, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.handle, &info); err != nil {
		return 0, errors.Wrap(err, errors.ErrConsole, "GetConsoleScreenBufferInfo failed")
	}
	return info.Attributes, nil
}

func (c *windowsConsole) SetAttributes(word uint16) error {
	if err := procSetConsoleTextAttribute.Find(); err != nil {
		return errors.Wrap(err, errors.ErrNotSupported, "SetConsoleTextAttribute unavailable")
	}
	r, _, err := procSetConsoleTextAttribute.Call(uintptr(c.handle), uintptr(word))
	if r == 0 {
		return errors.Wrap(err, errors.ErrConsole, "SetConsoleTextAttribute failed")
	}
	return nil
}
