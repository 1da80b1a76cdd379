// Package rand generates random test data, such as resource names.
package rand

import (
	"bytes"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var (
	onceSource  sync.Once
	rgen        *rand.Rand
	onceLetters sync.Once
	randMutex   sync.Mutex
	letters     []byte
)

// segmentRunes may appear in a resource name: anything but "/"
var segmentRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_.~ %:@+é☃")

func seed() {
	src := rand.NewSource(time.Now().UnixNano())
	rgen = rand.New(src) // #nosec
}

func makeLetters() {
	// adds "a" to pad over 256 locations (0-9 U a-z makes up to 252 only and we want to cover the range of uint8)
	letters = bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz0123456789a"), 7)
}

// Bytes returns a random slice of bytes
func Bytes(n int) []byte {
	onceSource.Do(seed)
	buf := make([]byte, n)
	randMutex.Lock()
	_, _ = rgen.Read(buf)
	randMutex.Unlock()
	return buf
}

// Intn returns a random int in [0,n)
func Intn(n int) int {
	onceSource.Do(seed)
	randMutex.Lock()
	defer randMutex.Unlock()
	return rgen.Intn(n)
}

// LetterString returns a random string picked in the [0-9]|[a-z] range
func LetterString(n int) string {
	onceLetters.Do(makeLetters)
	buf := Bytes(n)
	for i, b := range buf {
		buf[i] = letters[b]
	}
	return string(buf)
}

// Segment returns a random name of n runes which is valid as an account or repository name.
//
// Names never contain "/", but may contain spaces, punctuation or non-ASCII runes.
func Segment(n int) string {
	if n <= 0 {
		n = 1
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(segmentRunes[Intn(len(segmentRunes))])
	}
	return b.String()
}

// Segments returns k random names of 1 to maxLen runes
func Segments(k, maxLen int) []string {
	names := make([]string, k)
	for i := range names {
		names[i] = Segment(1 + Intn(maxLen))
	}
	return names
}
