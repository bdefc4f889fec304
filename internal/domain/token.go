package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const tokenLength = 30

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSubscriptionToken produces a 30-character alphanumeric confirmation
// token drawn uniformly from crypto/rand. Tokens are not checked for
// uniqueness; with 62^30 possibilities collisions are not a practical concern.
func GenerateSubscriptionToken() string {
	max := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, tokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken.
			panic(fmt.Sprintf("domain: read random source: %v", err))
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf)
}
