package pool

import (
	"reflect"
	"testing"
)

func TestSplitNullSeparated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []string
	}{
		{"nil data", nil, nil},
		{"empty data", []byte{}, nil},
		{"single path", []byte("/mnt/disk1/a.txt"), []string{"/mnt/disk1/a.txt"}},
		{"single path trailing separator", []byte("/mnt/disk1/a.txt\x00"), []string{"/mnt/disk1/a.txt"}},
		{
			"two paths",
			[]byte("/mnt/disk1/a.txt\x00/mnt/disk2/a.txt"),
			[]string{"/mnt/disk1/a.txt", "/mnt/disk2/a.txt"},
		},
		{
			"two paths trailing separator",
			[]byte("/mnt/disk1/a.txt\x00/mnt/disk2/a.txt\x00"),
			[]string{"/mnt/disk1/a.txt", "/mnt/disk2/a.txt"},
		},
		{
			"doubled separator",
			[]byte("/mnt/disk1/a.txt\x00\x00/mnt/disk2/a.txt"),
			[]string{"/mnt/disk1/a.txt", "/mnt/disk2/a.txt"},
		},
		{"only separators", []byte("\x00\x00"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitNullSeparated(tt.data)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitNullSeparated(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}
