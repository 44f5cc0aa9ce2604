// Package replica probes the filesystem metadata of branch copies.
package replica

import (
	"os"
	"time"

	"github.com/poolfs-tools/pool-dedup/internal/logging"
)

// Replica is one branch copy of a pooled file, together with the
// filesystem metadata that policies select on.
type Replica struct {
	Path    string
	Size    int64
	UID     uint32
	GID     uint32
	Mode    os.FileMode
	ModTime time.Time
}

// Probe stats every path and returns, in input order, the replicas that
// could be read. Unreadable paths are dropped and logged at debug level,
// keeping them out of both classification and removal.
func Probe(paths []string) []Replica {
	log := logging.GetLogger("replica")

	replicas := make([]Replica, 0, len(paths))
	for _, path := range paths {
		info, err := os.Lstat(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("dropping unreadable replica")
			continue
		}
		uid, gid := ownership(info)
		replicas = append(replicas, Replica{
			Path:    path,
			Size:    info.Size(),
			UID:     uid,
			GID:     gid,
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		})
	}
	return replicas
}
