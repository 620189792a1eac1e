package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// shortLen is the prefix length used for log correlation.
const shortLen = 12

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// Prefix returns the first prefixLen characters of SHA256(input).
func Prefix(input string, prefixLen int) string {
	full := SHA256Hex(input)
	if prefixLen > len(full) {
		return full
	}
	return full[:prefixLen]
}

// Short returns an irreversible 12-character hash of an identifier so user
// ids and IPs can be correlated in logs without being written there. The
// empty string stays empty.
func Short(input string) string {
	if input == "" {
		return ""
	}
	return Prefix(input, shortLen)
}
