package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeAlphabet avoids characters that are easy to confuse when a code is
// read aloud or typed from a print-out (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateAccessCode produces a short, human-enterable shared secret for
// gallery guest entry. Length is fixed by configuration; 8 characters over
// this alphabet is enough to resist casual brute force while staying
// readable.
func GenerateAccessCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("access code length must be positive, got %d", length)
	}
	code := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate access code: %w", err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
