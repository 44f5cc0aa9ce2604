package policy

import (
	"path/filepath"

	"github.com/samber/lo"
	"gitlab.com/tozd/go/errors"

	"github.com/poolfs-tools/pool-dedup/internal/space"
	"github.com/poolfs-tools/pool-dedup/pkg/replica"
)

// mostFreeSpace keeps the replica whose branch filesystem has the most
// available space, so removals drain the fullest branches first.
type mostFreeSpace struct {
	free func(path string) (uint64, error)
}

func newMostFreeSpace() mostFreeSpace {
	return mostFreeSpace{free: space.Available}
}

func (mostFreeSpace) Name() string { return "mostfreespace" }

func (p mostFreeSpace) Select(rs []replica.Replica) (Selection, error) {
	type measured struct {
		replica.Replica
		avail uint64
	}

	replicas := make([]measured, 0, len(rs))
	for _, r := range rs {
		// Stat the parent directory: it always lives on the branch,
		// and statfs on the replica itself would follow symlinks.
		avail, err := p.free(filepath.Dir(r.Path))
		if err != nil {
			return Selection{}, errors.Errorf("free space for %s: %w", r.Path, err)
		}
		replicas = append(replicas, measured{Replica: r, avail: avail})
	}

	best := lo.MaxBy(replicas, func(a, b measured) bool {
		return a.avail > b.avail
	})
	return keepOnly(rs, best.Path), nil
}
