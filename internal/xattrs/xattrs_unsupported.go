//go:build !linux

package xattrs

import "gitlab.com/tozd/go/errors"

// ErrNotSupportedPlatform is returned on platforms without the extended
// attribute calls the pool metadata channel relies on.
var ErrNotSupportedPlatform = errors.New("extended attributes not supported on this platform")

// Get is not supported on platforms other than linux.
func Get(path string, attr string) ([]byte, error) {
	return nil, ErrNotSupportedPlatform
}
