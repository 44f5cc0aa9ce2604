package dedup

import (
	"gitlab.com/tozd/go/errors"
)

// Strictness is the level of verification required before the replicas of
// a file count as duplicates of each other.
type Strictness int

const (
	// StrictnessNone trusts the pool: replicas sharing a pooled path are
	// presumed equal without looking at them.
	StrictnessNone Strictness = iota
	// StrictnessSize requires all replicas to have the same size.
	StrictnessSize
	// StrictnessContent requires the same size and the same content digest.
	StrictnessContent
)

// ParseStrictness validates a strictness level from the command line.
func ParseStrictness(level int) (Strictness, error) {
	if level < int(StrictnessNone) || level > int(StrictnessContent) {
		return 0, errors.Errorf("strictness must be 0 (none), 1 (size) or 2 (content), got %d", level)
	}
	return Strictness(level), nil
}

func (s Strictness) String() string {
	switch s {
	case StrictnessNone:
		return "none"
	case StrictnessSize:
		return "size"
	case StrictnessContent:
		return "content"
	}
	return "unknown"
}

// Decision is the outcome of classifying a replica set.
type Decision int

const (
	// Distinct replicas differ, or could not be verified equal.
	Distinct Decision = iota
	// Unverified replicas are presumed equal without verification.
	Unverified
	// SizeEqual replicas have equal sizes.
	SizeEqual
	// ContentEqual replicas have equal sizes and equal content digests.
	ContentEqual
)

// Equivalent reports whether the decision treats the set as duplicates.
func (d Decision) Equivalent() bool {
	return d != Distinct
}

func (d Decision) String() string {
	switch d {
	case Distinct:
		return "distinct"
	case Unverified:
		return "unverified"
	case SizeEqual:
		return "size-equal"
	case ContentEqual:
		return "content-equal"
	}
	return "unknown"
}

// FileResult records the outcome for one pooled file that resolved to
// multiple replicas.
type FileResult struct {
	Path       string   // pooled path
	Decision   Decision // why the set was or was not deduplicated
	Kept       []string
	Removed    []string // would-remove targets in dry-run
	SavedBytes int64
	Errors     []string
}
