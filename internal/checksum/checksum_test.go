package checksum

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{
			name:     "empty file",
			filename: "empty.txt",
			want:     "d41d8cd98f00b204e9800998ecf8427e", // MD5 of empty input
			wantErr:  false,
		},
		{
			name:     "hello world file",
			filename: "hello.txt",
			want:     "65a8e27d8879283831b664bd8b7f0ad4", // MD5 of "Hello, World!"
			wantErr:  false,
		},
		{
			name:     "multiline file",
			filename: "multiline.txt",
			want:     "040be657ecde8cf992ef02b970eda5f8", // MD5 of "Line 1\nLine 2\nLine 3"
			wantErr:  false,
		},
		{
			name:     "known hash file",
			filename: "known_hash.txt",
			want:     "9e107d9d372bb6826bd81d3542a419d6", // MD5 of "The quick brown fox jumps over the lazy dog"
			wantErr:  false,
		},
		{
			name:     "non-existent file",
			filename: "does_not_exist.txt",
			want:     "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join("testdata", tt.filename)
			got, err := File(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("File() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("File() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReader(t *testing.T) {
	got, err := Reader(strings.NewReader("The quick brown fox jumps over the lazy dog"))
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	want := "9e107d9d372bb6826bd81d3542a419d6"
	if got != want {
		t.Errorf("Reader() = %v, want %v", got, want)
	}
}

func TestReaderLargeInput(t *testing.T) {
	// Larger than one 64KB read so the chunked loop is exercised.
	input := strings.Repeat("a", bufferSize*3+17)
	got, err := Reader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	if len(got) != 32 {
		t.Errorf("Reader() digest length = %d, want 32", len(got))
	}
}

func TestEqual(t *testing.T) {
	if !Equal("abc", "abc") {
		t.Error("Equal() = false for identical digests")
	}
	if Equal("abc", "abd") {
		t.Error("Equal() = true for differing digests")
	}
}
