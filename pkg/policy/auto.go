package policy

import (
	"github.com/samber/lo"

	"github.com/poolfs-tools/pool-dedup/pkg/replica"
)

// keeper is a policy that keeps the single replica chosen by pick and
// removes the rest. Ties resolve to the earliest replica, so results are
// stable for a given replica order.
type keeper struct {
	name string
	pick func(rs []replica.Replica) replica.Replica
}

func (p keeper) Name() string { return p.name }

func (p keeper) Select(rs []replica.Replica) (Selection, error) {
	return keepOnly(rs, p.pick(rs).Path), nil
}

var (
	newestPolicy = keeper{
		name: "newest",
		pick: func(rs []replica.Replica) replica.Replica {
			return lo.MaxBy(rs, func(a, b replica.Replica) bool {
				return a.ModTime.After(b.ModTime)
			})
		},
	}

	oldestPolicy = keeper{
		name: "oldest",
		pick: func(rs []replica.Replica) replica.Replica {
			return lo.MinBy(rs, func(a, b replica.Replica) bool {
				return a.ModTime.Before(b.ModTime)
			})
		},
	}

	largestPolicy = keeper{
		name: "largest",
		pick: func(rs []replica.Replica) replica.Replica {
			return lo.MaxBy(rs, func(a, b replica.Replica) bool {
				return a.Size > b.Size
			})
		},
	}

	smallestPolicy = keeper{
		name: "smallest",
		pick: func(rs []replica.Replica) replica.Replica {
			return lo.MinBy(rs, func(a, b replica.Replica) bool {
				return a.Size < b.Size
			})
		},
	}
)
