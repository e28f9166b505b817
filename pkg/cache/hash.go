package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// RenderKey returns the cache key for an artifact rendered from svg.
// The key is render:<format>:<scale>:sha256(svg).
func RenderKey(format string, scale float64, svg []byte) string {
	return fmt.Sprintf("render:%s:%s:%s",
		strings.ToLower(format), strconv.FormatFloat(scale, 'f', -1, 64), Hash(svg))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
