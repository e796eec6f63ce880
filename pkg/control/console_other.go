//go:build !windows

package control

import "github.com/arthur-debert/lazypony/pkg/errors"

// OpenConsole is only available on Windows.
func OpenConsole() (Console, error) {
	return nil, errors.New(errors.ErrNotSupported, "native console is only available on windows")
}
