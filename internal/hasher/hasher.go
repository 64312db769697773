// Package hasher fingerprints encoded output files.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// HexLen is the length of a full xxHash64 digest in hex.
const HexLen = 16

// Sum returns the xxHash64 of data as 16 lowercase hex chars.
func Sum(data []byte) string {
	return format(xxhash.Sum64(data))
}

// SumFile streams the file at path through xxHash64.
func SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return format(h.Sum64()), nil
}

func format(v uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return hex.EncodeToString(b[:])
}
