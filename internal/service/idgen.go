package service

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// ComplaintIDPrefix starts every complaint id
const ComplaintIDPrefix = "CYP"

// IDGenerator builds complaint ids as prefix + last 6 digits of the millisecond
// clock + a random number in [100, 999]. Collisions are unlikely, not impossible.
type IDGenerator struct {
	now  func() time.Time
	intn func(n int) int
}

// NewIDGenerator creates a generator on the wall clock and the global random source
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now, intn: rand.IntN}
}

// NewID returns a fresh complaint id, e.g. CYP123456789
func (g *IDGenerator) NewID() string {
	stamp := strconv.FormatInt(g.now().UnixMilli(), 10)
	if len(stamp) > 6 {
		stamp = stamp[len(stamp)-6:]
	} else {
		stamp = strings.Repeat("0", 6-len(stamp)) + stamp
	}
	return ComplaintIDPrefix + stamp + strconv.Itoa(100+g.intn(900))
}
