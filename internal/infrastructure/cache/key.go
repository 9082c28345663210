package cache

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// maxFileNameLen is the common per-component name limit of local filesystems.
const maxFileNameLen = 255

// hashedPrefix marks names derived from a digest. '-' is outside the standard
// base64 alphabet, so hashed names never collide with encoded ones.
const hashedPrefix = "h-"

// FileName maps a cache key to the name of its file inside the store
// directory. Keys are base64 encoded with '/' replaced by '_'; keys whose
// encoding would exceed the name limit use the hex SHA-256 of the key.
func FileName(key string) string {
	encoded := strings.ReplaceAll(base64.StdEncoding.EncodeToString([]byte(key)), "/", "_")
	if len(encoded) <= maxFileNameLen {
		return encoded
	}

	sum := sha256.Sum256([]byte(key))
	return hashedPrefix + hex.EncodeToString(sum[:])
}
