package eval

import "math/rand"

// Noise adds a small amount of randomness to otherwise-tied evaluations, so
// repeated self-play or opening exploration doesn't collapse onto a single
// line. limit bounds the perturbation to [-limit/2, limit/2] centipawns; a
// zero-value Noise always returns zero.
type Noise struct {
	rand  *rand.Rand
	limit int
}

func NewNoise(limit int, seed int64) Noise {
	return Noise{limit: limit, rand: rand.New(rand.NewSource(seed))}
}

func (n Noise) Sample() Score {
	if n.limit <= 0 {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}
