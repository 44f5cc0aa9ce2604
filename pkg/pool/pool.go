// Package pool reads replica locations from a mergerfs pool through its
// extended attribute metadata channel.
//
// mergerfs exposes per-file control data under the reserved user.mergerfs
// attribute namespace. Reading user.mergerfs.fullpath on any pooled path
// resolves it to the backing branch path, which doubles as a cheap pool
// membership probe. Reading user.mergerfs.allpaths lists every branch copy
// of a file as NUL-separated absolute paths.
package pool

import (
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/poolfs-tools/pool-dedup/internal/xattrs"
)

const (
	// attrFullPath resolves a pooled path to its backing branch path.
	attrFullPath = "user.mergerfs.fullpath"
	// attrAllPaths lists every branch copy of a pooled path.
	attrAllPaths = "user.mergerfs.allpaths"
)

// ErrNotPoolMount indicates a directory that does not live on a mergerfs
// mount.
var ErrNotPoolMount = errors.New("not a mergerfs pool mount")

// Verify confirms that dir lives on a mergerfs mount by probing the
// metadata channel. It returns ErrNotPoolMount when the probe finds
// nothing to read.
func Verify(dir string) error {
	data, err := xattrs.Get(dir, attrFullPath)
	if err != nil {
		return errors.Errorf("probe pool mount: %w", err)
	}
	if len(data) == 0 {
		return errors.Errorf("%s: %w", dir, ErrNotPoolMount)
	}
	return nil
}

// Lister reports the branch copies of a pooled file.
type Lister interface {
	// Replicas returns the absolute branch paths holding a copy of the
	// pooled file at path. A nil slice with a nil error means the pool
	// exposes no replica information for this file.
	Replicas(path string) ([]string, error)
}

// Xattr is the Lister backed by the mergerfs metadata channel.
type Xattr struct{}

// Replicas implements Lister.
func (Xattr) Replicas(path string) ([]string, error) {
	data, err := xattrs.Get(path, attrAllPaths)
	if err != nil {
		return nil, err
	}
	return splitNullSeparated(data), nil
}

// splitNullSeparated splits a NUL-separated attribute value, dropping
// empty entries left by trailing or doubled separators.
func splitNullSeparated(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var paths []string
	for _, part := range strings.Split(string(data), "\x00") {
		if part != "" {
			paths = append(paths, part)
		}
	}
	return paths
}
