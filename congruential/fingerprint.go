package congruential

import (
	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("simlab congruential fingerprint!")

// Fingerprint returns a hash of the generated states. Identical requests
// always give identical fingerprints, so it can be compared across runs.
func Fingerprint(rows []Row) uint64 {
	var buf []byte
	for _, row := range rows {
		buf = row.Current.Append(buf, 10)
		buf = append(buf, '\n')
	}
	return highwayhash.Sum64(buf, fingerprintKey)
}
