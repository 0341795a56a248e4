package cache

import (
	"math"
	"math/rand/v2"
)

// maxJitterInput keeps expire*12 within int range.
const maxJitterInput = math.MaxInt / 12

// Jitter widens a nominal expiration of expire seconds to a uniformly random
// value in [floor(0.9*expire), floor(1.2*expire)], so entries populated
// together do not all expire together. A positive expire never yields less
// than one second, since zero means "no expiry" to a Store. Non-positive
// input is returned as is.
func Jitter(expire int) int {
	return jitterWith(expire, rand.IntN)
}

func jitterWith(expire int, intn func(int) int) int {
	if expire <= 0 {
		return expire
	}
	expire = min(expire, maxJitterInput)
	lo := expire * 9 / 10
	hi := expire * 12 / 10
	return max(1, lo+intn(hi-lo+1))
}
