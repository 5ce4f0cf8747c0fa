package test

import (
	"math/rand"
	"sync"
	"time"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	randMu  sync.Mutex
	randSrc = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a random alphanumeric string whose length falls
// in [minLen, maxLen]. Equal bounds produce exactly that length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	randMu.Lock()
	defer randMu.Unlock()
	buf := make([]byte, minLen+randSrc.Intn(maxLen-minLen+1))
	for i := range buf {
		buf[i] = tokenAlphabet[randSrc.Intn(len(tokenAlphabet))]
	}
	return string(buf)
}
