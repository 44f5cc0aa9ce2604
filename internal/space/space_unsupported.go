//go:build !linux

package space

import "gitlab.com/tozd/go/errors"

// ErrNotSupportedPlatform is returned on platforms without statfs.
var ErrNotSupportedPlatform = errors.New("filesystem space query not supported on this platform")

// Available is not supported on platforms other than linux.
func Available(path string) (uint64, error) {
	return 0, ErrNotSupportedPlatform
}
