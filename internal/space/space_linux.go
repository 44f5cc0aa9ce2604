package space

import (
	"os"

	"golang.org/x/sys/unix"
)

// Available reports the bytes available to unprivileged users on the
// filesystem holding path. A point-in-time read: concurrent writes make it
// stale immediately.
func Available(path string) (uint64, error) {
	var buf unix.Statfs_t
	if err := unix.Statfs(path, &buf); err != nil {
		return 0, &os.PathError{Op: "statfs", Path: path, Err: err}
	}
	return buf.Bavail * uint64(buf.Bsize), nil
}
