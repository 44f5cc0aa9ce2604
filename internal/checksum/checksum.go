package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

const bufferSize = 64 * 1024 // 64KB buffer

// File computes the MD5 digest of the file at path and returns it hex encoded.
// MD5 is collision resistant enough for accidental-duplicate detection, which
// is all replica comparison needs; it is not an integrity guarantee against an
// adversary.
func File(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Reader(file)
}

// Reader computes the MD5 digest of everything readable from r and returns it
// hex encoded.
func Reader(r io.Reader) (string, error) {
	hash := md5.New()
	buffer := make([]byte, bufferSize)

	for {
		n, err := r.Read(buffer)
		if n > 0 {
			if _, err := hash.Write(buffer[:n]); err != nil {
				return "", errors.Errorf("write to hash: %w", err)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Errorf("read: %w", err)
		}
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Equal reports whether two hex encoded digests match.
func Equal(digest1, digest2 string) bool {
	return digest1 == digest2
}
