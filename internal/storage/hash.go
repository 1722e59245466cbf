package storage

import (
	"crypto/sha256"
	"encoding/base64"
)

// ContentID derives a deterministic short identifier from a canonical content
// field: SHA-256 over the UTF-8 bytes, URL-safe Base64, truncated to the
// first 6 characters. Articles hash their URL, texts their raw text, podcasts
// their title, so re-ingesting the same content always maps to the same row.
//
// At 6 characters the collision space is small enough that this only suits a
// personal archive, not anything multi-tenant.
func ContentID(value string) string {
	digest := sha256.Sum256([]byte(value))
	return base64.URLEncoding.EncodeToString(digest[:])[:6]
}
