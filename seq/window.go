package seq

// Window is a non-owning view over w consecutive elements of a
// sequence, produced by Slide. The view aliases a ring buffer that
// Slide reuses, so a Window is only valid until the next window is
// produced; call Collect to keep the elements.
type Window[V any] struct {
	buf  []V
	head int
}

// Len returns the window width.
func (w Window[V]) Len() int {
	return len(w.buf)
}

// Empty reports whether the window holds no elements.
func (w Window[V]) Empty() bool {
	return len(w.buf) == 0
}

// At returns the i-th element of the window.
func (w Window[V]) At(i int) V {
	if i < 0 || i >= len(w.buf) {
		panic("seq: window index out of range")
	}
	return w.buf[(w.head+i)%len(w.buf)]
}

// Seq yields the window's elements front to back.
func (w Window[V]) Seq() Seq[V] {
	return func(yield func(V) bool) {
		for i := 0; i < len(w.buf); i++ {
			if !yield(w.buf[(w.head+i)%len(w.buf)]) {
				return
			}
		}
	}
}

// Collect copies the window into a new slice.
func (w Window[V]) Collect() []V {
	out := make([]V, 0, len(w.buf))
	for i := 0; i < len(w.buf); i++ {
		out = append(out, w.buf[(w.head+i)%len(w.buf)])
	}
	return out
}

// WindowEqual reports whether two windows hold equal elements in the
// same order.
func WindowEqual[V comparable](a, b Window[V]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			return false
		}
	}
	return true
}

// WindowEqualSlice reports whether a window holds the same elements
// as a slice, in order.
func WindowEqualSlice[V comparable](w Window[V], s []V) bool {
	if w.Len() != len(s) {
		return false
	}
	for i, v := range s {
		if w.At(i) != v {
			return false
		}
	}
	return true
}

// Slide yields overlapping windows of width w, advancing one source
// element at a time. A source with fewer than w elements yields no
// windows. Each yielded Window aliases an internal ring buffer and is
// invalidated by the next window. A width below 1 is clamped to 1.
func Slide[V any](src Seq[V], w int) Seq[Window[V]] {
	if w < 1 {
		w = 1
	}
	return func(yield func(Window[V]) bool) {
		buf := make([]V, 0, w)
		head := 0
		for v := range src {
			if len(buf) < w {
				buf = append(buf, v)
				if len(buf) < w {
					continue
				}
			} else {
				buf[head] = v
				head = (head + 1) % w
			}
			if !yield(Window[V]{buf: buf, head: head}) {
				return
			}
		}
	}
}
