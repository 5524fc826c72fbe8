package automaton

// record is one remembered play: the observable seen, the strategy parameters
// used, and the payoff they earned.
type record struct {
	observable  int
	localOp     []float64
	mixedChoice []float64
	payoff      float64
}

// memory is a fixed-capacity ring buffer of play records with strict
// oldest-first eviction.
type memory struct {
	buf   []record
	head  int
	count int
}

func newMemory(capacity int) *memory {
	return &memory{buf: make([]record, capacity)}
}

func (m *memory) add(r record) {
	m.buf[m.head] = r
	m.head = (m.head + 1) % len(m.buf)
	if m.count < len(m.buf) {
		m.count++
	}
}

func (m *memory) len() int { return m.count }

// each visits records oldest first.
func (m *memory) each(fn func(record)) {
	start := m.head - m.count
	if start < 0 {
		start += len(m.buf)
	}
	for i := 0; i < m.count; i++ {
		fn(m.buf[(start+i)%len(m.buf)])
	}
}
