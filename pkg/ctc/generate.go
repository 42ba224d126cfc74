package ctc

import (
	"math/rand/v2"
	"time"
)

// GenerateRandom builds a plausible noisy CTC trace for word. Each rune is
// preceded by a blank with probability 1/2 and repeated one to three times;
// the trace ends with a blank. A blank always separates a rune from an
// identical predecessor so that Decode(GenerateRandom(w)) == w for any word
// without blank labels.
//
// rng may be nil, in which case a time-seeded source is used.
func GenerateRandom(word string, rng *rand.Rand) []string {
	if rng == nil {
		rng = newRand()
	}

	out := make([]string, 0, len(word)*3+1)
	var prev rune
	for i, r := range []rune(word) {
		if rng.IntN(2) == 1 || (i > 0 && r == prev) {
			out = append(out, Blank)
		}
		repeat := rng.IntN(3) + 1
		for range repeat {
			out = append(out, string(r))
		}
		prev = r
	}
	return append(out, Blank)
}

func newRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
