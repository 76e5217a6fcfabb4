package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// codeAlphabet skips characters that are easy to misread (0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCode returns PREFIX-XXXX-XXXX-XXXX using a cryptographic source.
func GenerateCode(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)

	max := big.NewInt(int64(len(codeAlphabet)))
	for group := 0; group < 3; group++ {
		b.WriteByte('-')
		for i := 0; i < 4; i++ {
			n, err := rand.Int(rand.Reader, max)
			if err != nil {
				// fallback: time-based entropy
				n = big.NewInt(time.Now().UnixNano() % int64(len(codeAlphabet)))
			}
			b.WriteByte(codeAlphabet[n.Int64()])
		}
	}

	return b.String()
}

// GenerateOrderNumber returns a human readable order reference,
// e.g. ORD-20261015-093012-481-0427.
func GenerateOrderNumber(now time.Time) string {
	now = now.UTC()
	millis := now.Nanosecond() / int(time.Millisecond)

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 10000)
	}
	return fmt.Sprintf("ORD-%s-%03d-%04d", now.Format("20060102-150405"), millis, n.Int64())
}
