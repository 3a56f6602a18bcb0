// Package handle implements generation-checked handle tables.
//
// A Handle packs a slot index and the generation the slot had when the value
// was inserted. Removing a value bumps nothing by itself; the next Insert into
// the same slot increments its generation, so handles to the old occupant no
// longer resolve.
package handle

// Handle is an opaque reference into a Table. The zero Handle is never valid.
type Handle uint64

func (h Handle) slot() uint32       { return uint32(h) }
func (h Handle) generation() uint32 { return uint32(h >> 32) }

func makeHandle(index uint32, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index+1))
}

type slot[T any] struct {
	value *T
	gen   uint32
	live  bool
}

// Table maps handles to heap-owned values.
type Table[T any] struct {
	slots []slot[T]
	free  []uint32
	limit int
	count int
}

// NewTable creates a table holding at most limit live values.
// A limit <= 0 means unbounded.
func NewTable[T any](limit int) *Table[T] {
	return &Table[T]{limit: limit}
}

// Insert stores v and returns its handle, or 0 if the table is full.
func (t *Table[T]) Insert(v *T) Handle {
	if v == nil {
		return 0
	}
	if t.limit > 0 && t.count >= t.limit {
		return 0
	}

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.slots = append(t.slots, slot[T]{})
		idx = uint32(len(t.slots) - 1)
	}

	s := &t.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.value = v
	s.live = true
	t.count++
	return makeHandle(idx, s.gen)
}

// Get resolves h. It fails for the zero handle, unknown slots and handles
// whose generation does not match the slot's current occupant.
func (t *Table[T]) Get(h Handle) (*T, bool) {
	i := h.slot()
	if i == 0 || int(i) > len(t.slots) {
		return nil, false
	}
	s := &t.slots[i-1]
	if !s.live || s.gen != h.generation() {
		return nil, false
	}
	return s.value, true
}

// Valid reports whether h currently resolves.
func (t *Table[T]) Valid(h Handle) bool {
	_, ok := t.Get(h)
	return ok
}

// Remove releases h. It returns false if h did not resolve.
func (t *Table[T]) Remove(h Handle) bool {
	if !t.Valid(h) {
		return false
	}
	i := h.slot() - 1
	s := &t.slots[i]
	s.value = nil
	s.live = false
	t.free = append(t.free, i)
	t.count--
	return true
}

// Len returns the number of live values.
func (t *Table[T]) Len() int {
	return t.count
}

// Each calls fn for every live value in slot order until fn returns false.
// Values inserted or removed by fn may or may not be visited.
func (t *Table[T]) Each(fn func(Handle, *T) bool) {
	for i := 0; i < len(t.slots); i++ {
		s := t.slots[i]
		if !s.live {
			continue
		}
		if !fn(makeHandle(uint32(i), s.gen), s.value) {
			return
		}
	}
}
