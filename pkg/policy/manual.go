package policy

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"

	"github.com/poolfs-tools/pool-dedup/internal/logging"
	"github.com/poolfs-tools/pool-dedup/pkg/replica"
)

// Manual asks the operator to pick the survivor of every duplicate set.
//
// Prompts are serialized: concurrent callers take turns, and each set is
// fully answered before the next one is shown.
type Manual struct {
	In  io.Reader
	Out io.Writer

	mu      sync.Mutex
	scanner *bufio.Scanner
}

func (*Manual) Name() string { return "manual" }

// Select implements Policy. It lists the replicas with their metadata and
// keeps the one the operator picks. Answering "s", or exhausting the
// input, keeps every replica.
func (m *Manual) Select(rs []replica.Replica) (Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scanner == nil {
		m.scanner = bufio.NewScanner(m.In)
	}

	fmt.Fprintln(m.Out)
	for i, r := range rs {
		fmt.Fprintf(m.Out, "%d) %s\n", i+1, color.CyanString(r.Path))
		fmt.Fprintf(m.Out, "   %s  %s  uid:%d gid:%d  %s\n",
			logging.FormatBytes(r.Size),
			r.ModTime.Format("2006-01-02 15:04:05"),
			r.UID, r.GID, r.Mode)
	}

	for {
		fmt.Fprintf(m.Out, "keep which replica? [1-%d, s=skip]: ", len(rs))

		if !m.scanner.Scan() {
			if err := m.scanner.Err(); err != nil {
				return Selection{}, errors.Errorf("read answer: %w", err)
			}
			fmt.Fprintln(m.Out, "eof, skipping")
			return Selection{Keep: rs}, nil
		}

		answer := strings.TrimSpace(m.scanner.Text())
		if strings.EqualFold(answer, "s") {
			return Selection{Keep: rs}, nil
		}

		idx, err := strconv.Atoi(answer)
		if err != nil || idx < 1 || idx > len(rs) {
			fmt.Fprintln(m.Out, color.RedString("invalid answer %q", answer))
			continue
		}
		return keepOnly(rs, rs[idx-1].Path), nil
	}
}
