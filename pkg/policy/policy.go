// Package policy selects which replica of a duplicate set survives.
package policy

import (
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/poolfs-tools/pool-dedup/pkg/replica"
)

// Selection partitions a replica set into survivors and removals. Keep and
// Remove together hold exactly the input replicas, and Keep is never empty.
// A selection that keeps everything means the set was skipped.
type Selection struct {
	Keep   []replica.Replica
	Remove []replica.Replica
}

// Skipped reports whether the selection leaves the set untouched.
func (s Selection) Skipped() bool {
	return len(s.Remove) == 0
}

// Policy chooses the surviving replica of a duplicate set.
type Policy interface {
	// Name returns the policy name as spelled on the command line.
	Name() string

	// Select partitions a replica set into survivors and removals.
	// Interactive policies block until the operator answers.
	Select(rs []replica.Replica) (Selection, error)
}

// Names lists the selectable policies.
func Names() []string {
	return []string{"manual", "newest", "oldest", "largest", "smallest", "mostfreespace"}
}

// FromName resolves a policy name from the command line. The manual policy
// reads answers from stdin and prompts on stderr.
func FromName(name string) (Policy, error) {
	switch name {
	case "manual":
		return &Manual{In: os.Stdin, Out: os.Stderr}, nil
	case "newest":
		return newestPolicy, nil
	case "oldest":
		return oldestPolicy, nil
	case "largest":
		return largestPolicy, nil
	case "smallest":
		return smallestPolicy, nil
	case "mostfreespace":
		return newMostFreeSpace(), nil
	}
	return nil, errors.Errorf("unknown policy %q, valid policies: %s", name, strings.Join(Names(), ", "))
}

// keepOnly builds the selection that keeps the replica at keepPath and
// removes the rest, preserving input order in both halves.
func keepOnly(rs []replica.Replica, keepPath string) Selection {
	var sel Selection
	for _, r := range rs {
		if r.Path == keepPath {
			sel.Keep = append(sel.Keep, r)
		} else {
			sel.Remove = append(sel.Remove, r)
		}
	}
	return sel
}
