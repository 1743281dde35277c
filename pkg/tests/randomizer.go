package tests

import (
	"fmt"
	"math/rand/v2"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

func RandomString(length int) string {
	b := make([]byte, length)

	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}

	return string(b)
}

func RandomInt(min, max int) int {
	return min + rand.IntN(max-min+1)
}

func RandomEmail() string {
	return fmt.Sprintf("%s@%s.test", RandomString(8), RandomString(6))
}
