// Package random generates random strings from crypto/rand.
package random

import (
	"crypto/rand"
	"math/big"
)

const (
	alnum      = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerAlnum = "0123456789abcdefghijklmnopqrstuvwxyz"
)

func pick(alphabet string, n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}

// Seq generates a random alphanumeric string of length n.
func Seq(n int) string {
	return pick(alnum, n)
}

// LowerSeq generates a random string of lowercase letters and digits, safe
// for use inside slugs and object keys.
func LowerSeq(n int) string {
	return pick(lowerAlnum, n)
}
