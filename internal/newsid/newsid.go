// Package newsid derives stable article identifiers from source URLs.
package newsid

import (
	"crypto/sha256"
	"encoding/base64"
)

// Length of the emitted identifier. 43 characters of base64url cover
// the full 256-bit digest without padding.
const Length = 43

// ForURL hashes a source URL into a fixed-length, URL-safe identifier.
// The same URL always yields the same identifier, so repeated ingestion
// of an article lands on the same record.
func ForURL(url string) string {
	sum := sha256.Sum256([]byte(url))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:Length]
}
