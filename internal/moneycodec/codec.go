// Package moneycodec transforms domain amounts to and from their at-rest
// representation. Two interchangeable strategies exist: a multiplicative
// obfuscation factor (a deterrent against casual inspection of the database,
// not a security measure) and AES-256-GCM encryption of the decimal string.
// Decoding is deliberately tolerant: a single corrupt row must never abort a
// list or balance request, so failures decode to zero and are logged by the
// caller.
package moneycodec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Codec encodes a positive domain amount for storage and decodes it back.
// Decode never fails; undecodable values yield 0.
type Codec interface {
	Encode(amount float64) (string, error)
	Decode(stored string) float64
}

// FactorCodec multiplies amounts by a fixed constant before storage and
// divides on read.
type FactorCodec struct {
	factor float64
}

// NewFactorCodec creates a FactorCodec. The factor must be positive.
func NewFactorCodec(factor float64) (*FactorCodec, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("obfuscation factor must be positive, got %v", factor)
	}
	return &FactorCodec{factor: factor}, nil
}

// Encode stores amount*factor as a decimal string.
func (c *FactorCodec) Encode(amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("amount must be positive, got %v", amount)
	}
	return formatAmount(amount * c.factor), nil
}

// Decode parses the stored value and divides by the factor. Non-numeric
// values decode to 0.
func (c *FactorCodec) Decode(stored string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(stored), 64)
	if err != nil {
		return 0
	}
	return roundCurrency(v / c.factor)
}

// formatAmount renders a float without exponent notation and without
// trailing-zero noise beyond what the value needs.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func roundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
