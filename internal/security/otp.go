package security

import (
	"crypto/rand"
	"math/big"
)

// GenerateOTPCode returns n uniformly random decimal digits, leading zeros
// included.
func GenerateOTPCode(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + d.Int64())
	}
	return string(digits), nil
}
