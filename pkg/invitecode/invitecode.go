// Package invitecode generates and normalizes the 6-digit numeric codes used
// to join sessions. Codes are stored as an unbroken digit string; the
// user-facing form inserts a dash after the third digit (XXX-XXX).
package invitecode

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// Length is the number of decimal digits in a code.
const Length = 6

// ErrInvalid reports input that does not normalize to a 6-digit code.
var ErrInvalid = errors.New("invitecode: invalid code")

var codeSpace = big.NewInt(1_000_000)

// Generate returns a new random 6-digit code, zero-padded. The caller is
// responsible for retrying on collision against its uniqueness index.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("invitecode: generate: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Format renders a canonical code in the user-facing XXX-XXX form.
// Input that is not a valid code is returned unchanged.
func Format(code string) string {
	if !Valid(code) {
		return code
	}
	return code[:3] + "-" + code[3:]
}

// Normalize maps any user-typed or scanned input to the canonical 6-digit
// form. Typed codes may carry dashes or spaces; scanned QR payloads are full
// deep-link URLs, from which the first run of 6 consecutive digits is taken.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalid
	}

	// Fast path: typed code with optional separators.
	stripped := strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if Valid(stripped) {
		return stripped, nil
	}

	// Scanned payloads: take the first 6 digits found anywhere in the string.
	digits := make([]byte, 0, Length)
	for _, r := range stripped {
		if r >= '0' && r <= '9' {
			digits = append(digits, byte(r))
			if len(digits) == Length {
				return string(digits), nil
			}
		}
	}
	return "", ErrInvalid
}

// Valid reports whether code is exactly 6 decimal digits.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
