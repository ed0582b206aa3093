package maze

// Source is a uniform integer generator over [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// SequenceSource replays a fixed list of drawn indices. Each value is reduced
// modulo the requested bound and the list wraps around when exhausted, so any
// sequence is usable. An empty sequence always draws 0.
type SequenceSource struct {
	values []int
	next   int
	calls  int
}

// NewSequenceSource returns a source replaying values in order.
func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{values: append([]int(nil), values...)}
}

// Intn implements Source.
func (s *SequenceSource) Intn(n int) int {
	s.calls++
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return ((v % n) + n) % n
}

// Calls returns how many indices have been drawn.
func (s *SequenceSource) Calls() int {
	return s.calls
}
