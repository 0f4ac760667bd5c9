package monitor

// DefaultRetention is one day of one-second samples.
const DefaultRetention = 86400

// History is a fixed-capacity FIFO of samples in insertion order. Storage
// grows on demand up to the capacity and then wraps, overwriting the oldest
// entry. History is not safe for concurrent use; Monitor guards it.
type History[T any] struct {
	data     []T
	head     int
	count    int
	capacity int
}

// NewHistory creates a history holding at most capacity samples.
func NewHistory[T any](capacity int) *History[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &History[T]{data: make([]T, 0, min(capacity, 1024)), capacity: capacity}
}

// Push appends a sample, evicting the oldest one if the history is full.
func (h *History[T]) Push(v T) {
	if len(h.data) < h.capacity {
		h.data = append(h.data, v)
		h.count++
		return
	}
	h.data[h.head] = v
	h.head = (h.head + 1) % h.capacity
}

// Len returns the number of stored samples.
func (h *History[T]) Len() int { return h.count }

// Cap returns the maximum number of samples retained.
func (h *History[T]) Cap() int { return h.capacity }

// At returns the i-th sample in chronological order, 0 being the oldest.
// It panics if i is out of range.
func (h *History[T]) At(i int) T {
	if i < 0 || i >= h.count {
		panic("monitor: history index out of range")
	}
	return h.data[(h.head+i)%len(h.data)]
}

// Last returns the most recent sample and false if the history is empty.
func (h *History[T]) Last() (T, bool) {
	if h.count == 0 {
		var zero T
		return zero, false
	}
	return h.At(h.count - 1), true
}
