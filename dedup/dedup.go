// Package dedup detects duplicate image content in a download
// directory by content hash, independent of filename.
package dedup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	log "github.com/sirupsen/logrus"
)

// HashBytes returns the content hash used for duplicate detection. The
// digest only needs to distinguish local files, not resist an attacker,
// so a fast non-cryptographic hash suffices.
func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// IsDuplicate reports whether dir already contains a regular file whose
// content hashes identically to b. Every file is re-read and re-hashed
// on every call, so the answer always reflects the current directory
// state; cost grows with the number and size of stored files. A file
// that cannot be read is skipped and counts as not-a-duplicate rather
// than failing the whole scan.
func IsDuplicate(dir string, b []byte) (bool, error) {
	want := HashBytes(b)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}

		path := filepath.Join(dir, e.Name())
		existing, err := os.ReadFile(path)
		if err != nil {
			log.WithError(err).Debugf("skipping unreadable file in duplicate scan: %s", path)
			continue
		}

		if HashBytes(existing) == want {
			log.Debugf("duplicate content: %s", path)
			return true, nil
		}
	}

	return false, nil
}
