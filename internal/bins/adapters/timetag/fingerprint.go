package timetag

import (
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/minio/highwayhash"
)

// fingerprintKey is fixed so the same file content always hashes the same,
// across runs and machines.
var fingerprintKey = []byte("photon-bins/timetag/fingerprint!")

func newFingerprintHash() (hash.Hash, error) {
	h, err := highwayhash.New(fingerprintKey)
	if err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}
	return h, nil
}

// FileFingerprint hashes the raw (possibly compressed) bytes of a file.
func FileFingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := newFingerprintHash()
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
