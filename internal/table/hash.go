package table

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for content-addressed table identity.
// Version suffix enables future algorithm migration.
const domainTable = "reframe/table/v1"

// Fingerprint computes the content-addressed identity of a table:
// SHA256(domain + 0x00 + canonical JSON). The null byte separator prevents
// domain/data boundary ambiguity. Two tables with Equal content always
// produce the same fingerprint.
func Fingerprint(t *Table) (string, error) {
	data, err := MarshalCanonical(t)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(domainTable))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
