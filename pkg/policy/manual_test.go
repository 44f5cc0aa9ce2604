package policy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/poolfs-tools/pool-dedup/pkg/replica"
)

func manualWith(input string) (*Manual, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Manual{In: strings.NewReader(input), Out: out}, out
}

func TestManualSelect(t *testing.T) {
	rs := []replica.Replica{
		rep("/mnt/disk1/a.txt", 2048, t0),
		rep("/mnt/disk2/a.txt", 2048, t1),
		rep("/mnt/disk3/a.txt", 2048, t2),
	}

	tests := []struct {
		name       string
		input      string
		wantKeep   []string
		wantRemove []string
	}{
		{
			name:       "keeps first answer",
			input:      "1\n",
			wantKeep:   []string{"/mnt/disk1/a.txt"},
			wantRemove: []string{"/mnt/disk2/a.txt", "/mnt/disk3/a.txt"},
		},
		{
			name:       "keeps middle answer",
			input:      "2\n",
			wantKeep:   []string{"/mnt/disk2/a.txt"},
			wantRemove: []string{"/mnt/disk1/a.txt", "/mnt/disk3/a.txt"},
		},
		{
			name:       "skip keeps everything",
			input:      "s\n",
			wantKeep:   []string{"/mnt/disk1/a.txt", "/mnt/disk2/a.txt", "/mnt/disk3/a.txt"},
			wantRemove: nil,
		},
		{
			name:       "skip is case insensitive",
			input:      "S\n",
			wantKeep:   []string{"/mnt/disk1/a.txt", "/mnt/disk2/a.txt", "/mnt/disk3/a.txt"},
			wantRemove: nil,
		},
		{
			name:       "whitespace around answer",
			input:      "  3  \n",
			wantKeep:   []string{"/mnt/disk3/a.txt"},
			wantRemove: []string{"/mnt/disk1/a.txt", "/mnt/disk2/a.txt"},
		},
		{
			name:       "invalid answers reprompt",
			input:      "x\n0\n9\n2\n",
			wantKeep:   []string{"/mnt/disk2/a.txt"},
			wantRemove: []string{"/mnt/disk1/a.txt", "/mnt/disk3/a.txt"},
		},
		{
			name:       "exhausted input skips",
			input:      "",
			wantKeep:   []string{"/mnt/disk1/a.txt", "/mnt/disk2/a.txt", "/mnt/disk3/a.txt"},
			wantRemove: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := manualWith(tt.input)

			sel, err := m.Select(rs)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if !equalPaths(sel.Keep, tt.wantKeep) {
				t.Errorf("Select() keep = %v, want %v", paths(sel.Keep), tt.wantKeep)
			}
			if !equalPaths(sel.Remove, tt.wantRemove) {
				t.Errorf("Select() remove = %v, want %v", paths(sel.Remove), tt.wantRemove)
			}
		})
	}
}

func TestManualPromptListsReplicas(t *testing.T) {
	m, out := manualWith("1\n")

	_, err := m.Select([]replica.Replica{
		rep("/mnt/disk1/a.txt", 2048, t0),
		rep("/mnt/disk2/a.txt", 4096, t1),
	})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	prompt := out.String()
	for _, want := range []string{
		"1)", "/mnt/disk1/a.txt", "2.0 KB",
		"2)", "/mnt/disk2/a.txt", "4.0 KB",
		"keep which replica? [1-2, s=skip]",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestManualReportsInvalidAnswer(t *testing.T) {
	m, out := manualWith("nope\n1\n")

	_, err := m.Select([]replica.Replica{
		rep("/mnt/disk1/a.txt", 10, t0),
		rep("/mnt/disk2/a.txt", 10, t1),
	})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if !strings.Contains(out.String(), "invalid answer") {
		t.Errorf("prompt missing invalid answer notice:\n%s", out.String())
	}
}

func TestManualAnswersSequentially(t *testing.T) {
	m, _ := manualWith("1\n2\n")

	first := []replica.Replica{
		rep("/mnt/disk1/a.txt", 10, t0),
		rep("/mnt/disk2/a.txt", 10, t1),
	}
	second := []replica.Replica{
		rep("/mnt/disk1/b.txt", 10, t0),
		rep("/mnt/disk2/b.txt", 10, t1),
	}

	sel, err := m.Select(first)
	if err != nil {
		t.Fatalf("first Select() error = %v", err)
	}
	if !equalPaths(sel.Keep, []string{"/mnt/disk1/a.txt"}) {
		t.Errorf("first Select() keep = %v", paths(sel.Keep))
	}

	sel, err = m.Select(second)
	if err != nil {
		t.Fatalf("second Select() error = %v", err)
	}
	if !equalPaths(sel.Keep, []string{"/mnt/disk2/b.txt"}) {
		t.Errorf("second Select() keep = %v", paths(sel.Keep))
	}
}
