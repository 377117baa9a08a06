// Package identifier mints collision-resistant record ids. The time component
// changes every millisecond and five random base-36 characters cover
// intra-millisecond collisions. Collision-resistant, not collision-proof: the
// residual risk is accepted instead of paying for a uniqueness check against
// the store.
package identifier

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const randomChars = 5

// Generator mints prefixed ids. The zero value is not usable; construct with
// New so the clock is injectable in tests.
type Generator struct {
	now func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock is for tests pinning the time component.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns prefix + base36(unix millis) + 5 random base36 chars, upper-cased.
func (g *Generator) Next(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36)))
	for i := 0; i < randomChars; i++ {
		b.WriteByte(base36Digit(rand.IntN(36)))
	}
	return b.String()
}

func base36Digit(n int) byte {
	if n < 10 {
		return byte('0' + n)
	}
	return byte('A' + n - 10)
}
