// Package password generates random passwords from selected character classes.
package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/jask/widgetbox/internal/apperr"
)

const (
	MinLength     = 8
	MaxLength     = 32
	DefaultLength = 16
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	numberChars = "0123456789"
	symbolChars = "!@#$%^&*()_+[]{}|;:,.<>?"
)

// Options selects the length and the character classes to draw from.
type Options struct {
	Length  int
	Upper   bool
	Lower   bool
	Numbers bool
	Symbols bool
}

// DefaultOptions enables every class at the default length.
func DefaultOptions() Options {
	return Options{Length: DefaultLength, Upper: true, Lower: true, Numbers: true, Symbols: true}
}

// Charset is the union of the selected classes.
func (o Options) Charset() string {
	var b strings.Builder
	if o.Upper {
		b.WriteString(upperChars)
	}
	if o.Lower {
		b.WriteString(lowerChars)
	}
	if o.Numbers {
		b.WriteString(numberChars)
	}
	if o.Symbols {
		b.WriteString(symbolChars)
	}
	return b.String()
}

func (o Options) Validate() error {
	if o.Length < MinLength || o.Length > MaxLength {
		return apperr.Validation(fmt.Sprintf("Password length must be between %d and %d", MinLength, MaxLength))
	}
	if o.Charset() == "" {
		return apperr.Validation("Please select at least one character type.")
	}
	return nil
}

// Generate returns a password of o.Length characters.
func Generate(o Options) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}
	charset := o.Charset()
	limit := big.NewInt(int64(len(charset)))
	out := make([]byte, o.Length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		out[i] = charset[n.Int64()]
	}
	return string(out), nil
}
