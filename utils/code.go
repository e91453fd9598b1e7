package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// GenerateBookingCode produces a caller-facing booking code like "NL-A742":
// the configured prefix, one random uppercase letter and a three-digit
// number, both drawn from crypto/rand.
func GenerateBookingCode(prefix string) (string, error) {
	letter, err := rand.Int(rand.Reader, big.NewInt(26))
	if err != nil {
		return "", fmt.Errorf("failed to generate random letter: %w", err)
	}
	number, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return fmt.Sprintf("%s-%c%d", prefix, 'A'+byte(letter.Int64()), 100+number.Int64()), nil
}

// NormalizeBookingCode strips everything but alphanumerics and uppercases,
// so spoken variants like "nlp 760" match the stored "NL-P760".
func NormalizeBookingCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(code)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
