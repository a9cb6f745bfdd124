package synth

import "math/rand/v2"

// source wraps a seeded generator with the sampling primitives the stages use.
type source struct {
	r *rand.Rand
}

func newSource(seed int64) *source {
	s := uint64(seed)
	return &source{r: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// intRange samples an integer uniformly from [lo, hi].
func (s *source) intRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

// uniform samples from [lo, hi).
func (s *source) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

func (s *source) normal(mean, stddev float64) float64 {
	return mean + stddev*s.r.NormFloat64()
}

func (s *source) choice(values []string) string {
	return values[s.r.IntN(len(values))]
}

// weighted picks one value with probability proportional to its weight.
func (s *source) weighted(values []string, weights []float64) string {
	return values[s.weightedIndex(weights)]
}

func (s *source) weightedIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	u := s.r.Float64() * total
	for i, w := range weights {
		if u < w {
			return i
		}
		u -= w
	}
	return len(weights) - 1
}

// sample draws n distinct values without replacement, each draw weighted by
// the remaining weights.
func (s *source) sample(values []string, weights []float64, n int) []string {
	vs := append([]string(nil), values...)
	ws := append([]float64(nil), weights...)
	if n > len(vs) {
		n = len(vs)
	}
	out := make([]string, 0, n)
	for range n {
		i := s.weightedIndex(ws)
		out = append(out, vs[i])
		vs = append(vs[:i], vs[i+1:]...)
		ws = append(ws[:i], ws[i+1:]...)
	}
	return out
}
