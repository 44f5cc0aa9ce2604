package xattrs

import (
	"os"

	"golang.org/x/sys/unix"
)

// Get retrieves the value of the extended attribute attr on path. It never
// follows symlinks, so the attribute read always applies to the path itself.
// Returns (nil, nil) when the attribute is not present or the filesystem
// does not support extended attributes.
func Get(path string, attr string) ([]byte, error) {
	// Most values fit in 256 bytes; retry with the reported size when not.
	dest := make([]byte, 256)
	sz, errno := unix.Lgetxattr(path, attr, dest)

	for errno == unix.ERANGE {
		// Buffer too small, probe with a zero-sized buffer for the actual size
		sz, errno = unix.Lgetxattr(path, attr, []byte{})
		if errno != nil {
			return nil, &os.PathError{Op: "lgetxattr", Path: path, Err: errno}
		}
		dest = make([]byte, sz)
		sz, errno = unix.Lgetxattr(path, attr, dest)
	}

	switch {
	case errno == unix.ENODATA || errno == unix.ENOTSUP:
		return nil, nil
	case errno != nil:
		return nil, &os.PathError{Op: "lgetxattr", Path: path, Err: errno}
	}

	return dest[:sz], nil
}
