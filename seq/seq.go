// Package seq provides a lazy, composable sequence-adapter library in
// the range-over-func shape. A Seq is a single-pass push iterator;
// adapters wrap a source Seq without consuming it until the pipeline
// is ranged over or finished with a terminal operation. Adapter order
// is observable: Filter-then-Take inspects more elements than
// Take-then-Filter.
package seq

import "iter"

// Seq is a sequence of values. It is convertible to and from
// iter.Seq[V] and can be ranged over directly.
type Seq[V any] func(yield func(V) bool)

// Seq2 is a sequence of pairs, convertible to and from iter.Seq2[K, V].
type Seq2[K, V any] func(yield func(K, V) bool)

// Of returns a sequence over the given values.
func Of[V any](values ...V) Seq[V] {
	return From(values)
}

// From returns a sequence over a slice. The slice is not copied;
// the sequence restarts from the front each time it is ranged.
func From[V any](s []V) Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// Range yields the integers in [start, end).
func Range(start, end int) Seq[int] {
	return func(yield func(int) bool) {
		for i := start; i < end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Reverse yields the elements of a slice back to front. Reversal
// needs a random-access source, so it takes a slice rather than
// adapting an arbitrary single-pass sequence.
func Reverse[V any](s []V) Seq[V] {
	return func(yield func(V) bool) {
		for i := len(s) - 1; i >= 0; i-- {
			if !yield(s[i]) {
				return
			}
		}
	}
}

// Concat yields a in full, then b. Event readers use it to present
// the two event buffers as one logical sequence.
func Concat[V any](a, b Seq[V]) Seq[V] {
	return a.Chain(b)
}

// Join flattens a sequence of slices into a single sequence.
func Join[V any](s Seq[[]V]) Seq[V] {
	return func(yield func(V) bool) {
		for inner := range s {
			for _, v := range inner {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Iter converts the sequence for use with the standard iter package.
func (s Seq[V]) Iter() iter.Seq[V] {
	return iter.Seq[V](s)
}

// Chain yields this sequence in full, then next.
func (s Seq[V]) Chain(next Seq[V]) Seq[V] {
	return func(yield func(V) bool) {
		done := false
		s(func(v V) bool {
			if !yield(v) {
				done = true
				return false
			}
			return true
		})
		if done {
			return
		}
		next(yield)
	}
}

// Filter yields the elements for which pred is true.
func (s Seq[V]) Filter(pred func(V) bool) Seq[V] {
	return func(yield func(V) bool) {
		for v := range s {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}

// Take yields the first n elements.
func (s Seq[V]) Take(n int) Seq[V] {
	return func(yield func(V) bool) {
		if n <= 0 {
			return
		}
		left := n
		s(func(v V) bool {
			if !yield(v) {
				return false
			}
			left--
			return left > 0
		})
	}
}

// Skip yields the elements after the first n.
func (s Seq[V]) Skip(n int) Seq[V] {
	return func(yield func(V) bool) {
		skipped := 0
		for v := range s {
			if skipped < n {
				skipped++
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// TakeWhile yields the prefix for which pred holds, then stops
// permanently on the first failing element.
func (s Seq[V]) TakeWhile(pred func(V) bool) Seq[V] {
	return func(yield func(V) bool) {
		s(func(v V) bool {
			if !pred(v) {
				return false
			}
			return yield(v)
		})
	}
}

// SkipWhile drops the prefix for which pred holds, then yields all
// remaining elements regardless of pred.
func (s Seq[V]) SkipWhile(pred func(V) bool) Seq[V] {
	return func(yield func(V) bool) {
		skipping := true
		for v := range s {
			if skipping {
				if pred(v) {
					continue
				}
				skipping = false
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Inspect calls f on each element for side effects and yields the
// element unchanged.
func (s Seq[V]) Inspect(f func(V)) Seq[V] {
	return func(yield func(V) bool) {
		for v := range s {
			f(v)
			if !yield(v) {
				return
			}
		}
	}
}

// StepBy yields the first element and then every step-th element
// after it. A step below 1 is clamped to 1.
func (s Seq[V]) StepBy(step int) Seq[V] {
	if step < 1 {
		step = 1
	}
	return func(yield func(V) bool) {
		i := 0
		for v := range s {
			if i%step == 0 && !yield(v) {
				return
			}
			i++
		}
	}
}

// Stride yields every n-th element from the current position,
// starting with the first.
func (s Seq[V]) Stride(n int) Seq[V] {
	return s.StepBy(n)
}

// ForEach consumes the sequence, calling action on each element.
func (s Seq[V]) ForEach(action func(V)) {
	for v := range s {
		action(v)
	}
}

// Any reports whether pred holds for at least one element. It stops
// consuming on the first match.
func (s Seq[V]) Any(pred func(V) bool) bool {
	for v := range s {
		if pred(v) {
			return true
		}
	}
	return false
}

// All reports whether pred holds for every element. It stops
// consuming on the first failure.
func (s Seq[V]) All(pred func(V) bool) bool {
	for v := range s {
		if !pred(v) {
			return false
		}
	}
	return true
}

// None reports whether pred holds for no element.
func (s Seq[V]) None(pred func(V) bool) bool {
	return !s.Any(pred)
}

// Find returns the first element for which pred holds.
func (s Seq[V]) Find(pred func(V) bool) (V, bool) {
	for v := range s {
		if pred(v) {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// CountIf returns the number of elements for which pred holds.
func (s Seq[V]) CountIf(pred func(V) bool) int {
	n := 0
	for v := range s {
		if pred(v) {
			n++
		}
	}
	return n
}

// Count consumes the sequence and returns its length.
func (s Seq[V]) Count() int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Partition splits the sequence into the elements matching pred and
// those that do not, preserving order within each slice.
func (s Seq[V]) Partition(pred func(V) bool) (matching, rest []V) {
	for v := range s {
		if pred(v) {
			matching = append(matching, v)
		} else {
			rest = append(rest, v)
		}
	}
	return matching, rest
}

// Collect consumes the sequence into a new slice.
func (s Seq[V]) Collect() []V {
	var out []V
	for v := range s {
		out = append(out, v)
	}
	return out
}

// Into appends the sequence to dst and returns the extended slice,
// avoiding the intermediate allocation of Collect.
func (s Seq[V]) Into(dst []V) []V {
	for v := range s {
		dst = append(dst, v)
	}
	return dst
}
