package srs

// stubRNG feeds predetermined sequences to the engine so tests can steer
// every sampled decision. Sequences wrap around when exhausted.
type stubRNG struct {
	floats   []float64
	ints     []int
	floatIdx int
	intIdx   int
}

func (s *stubRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.floatIdx%len(s.floats)]
	s.floatIdx++
	return v
}

func (s *stubRNG) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.intIdx%len(s.ints)] % n
	s.intIdx++
	return v
}
