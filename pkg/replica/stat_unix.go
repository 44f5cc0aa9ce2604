//go:build unix

package replica

import (
	"io/fs"
	"syscall"
)

// ownership extracts the owning uid and gid from stat data.
func ownership(info fs.FileInfo) (uint32, uint32) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return st.Uid, st.Gid
	}
	return 0, 0
}
