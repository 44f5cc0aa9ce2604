package dedup

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/poolfs-tools/pool-dedup/internal/checksum"
	"github.com/poolfs-tools/pool-dedup/internal/logging"
	"github.com/poolfs-tools/pool-dedup/pkg/replica"
)

// Classifier decides whether the replicas of a pooled file are duplicates
// of each other.
type Classifier struct {
	strictness Strictness
	logger     zerolog.Logger
}

// NewClassifier creates a classifier for the given strictness level.
func NewClassifier(strictness Strictness) *Classifier {
	return &Classifier{
		strictness: strictness,
		logger:     logging.GetLogger("classify"),
	}
}

// Classify inspects a replica set and returns its decision. A replica that
// cannot be verified counts as distinct, never as a duplicate, so read
// failures lean toward keeping data. The returned error is non-nil only
// when ctx is canceled.
func (c *Classifier) Classify(ctx context.Context, rs []replica.Replica) (Decision, error) {
	switch c.strictness {
	case StrictnessNone:
		return Unverified, nil
	case StrictnessSize:
		return c.classifySize(rs), nil
	default:
		return c.classifyContent(ctx, rs)
	}
}

func (c *Classifier) classifySize(rs []replica.Replica) Decision {
	for _, r := range rs[1:] {
		if r.Size != rs[0].Size {
			return Distinct
		}
	}
	return SizeEqual
}

func (c *Classifier) classifyContent(ctx context.Context, rs []replica.Replica) (Decision, error) {
	// Differing sizes settle it without reading anything
	if c.classifySize(rs) == Distinct {
		return Distinct, nil
	}

	digests := make([]string, len(rs))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range rs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			sum, err := checksum.File(r.Path)
			if err != nil {
				return errors.Errorf("digest %s: %w", r.Path, err)
			}
			digests[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return Distinct, ctx.Err()
		}
		c.logger.Warn().Err(err).Msg("content check failed, treating replicas as distinct")
		return Distinct, nil
	}

	for _, sum := range digests[1:] {
		if !checksum.Equal(sum, digests[0]) {
			return Distinct, nil
		}
	}
	return ContentEqual, nil
}
