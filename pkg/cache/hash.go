package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a stage-prefixed cache key from the given components:
// "scene:<hex>", "tree:<hex>", "artifact:<hex>". The components are
// JSON-encoded before hashing so structs like TreeKeyOpts contribute
// every field.
func hashKey(stage string, parts ...any) string {
	encoded, _ := json.Marshal(parts)
	sum := sha256.Sum256(encoded)
	return fmt.Sprintf("%s:%s", stage, hex.EncodeToString(sum[:]))
}

// Hash returns the SHA-256 digest of data as 64 hex characters. Scene
// and tree hashes use the full digest so distinct inputs never collide
// in practice.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
