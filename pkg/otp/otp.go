package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Generate - шестизначный код подтверждения из crypto/rand
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
