package utils

import (
	"crypto/sha1" //nolint:gosec // upstream publishes sha1 digests
	"encoding/hex"
	"fmt"
	"strings"
)

// VerifySHA1 compares data against a hex digest. An empty expected digest
// always passes.
func VerifySHA1(data []byte, expected string) error {
	if expected == "" {
		return nil
	}
	actual := sha1Sum(data)
	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}

func sha1Sum(data []byte) string {
	sum := sha1.Sum(data) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
