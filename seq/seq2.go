package seq

import (
	"cmp"
	"iter"
)

// Pair is a key/value tuple produced when a two-column sequence is
// collected into a slice.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Iter converts the sequence for use with the standard iter package.
func (s Seq2[K, V]) Iter() iter.Seq2[K, V] {
	return iter.Seq2[K, V](s)
}

// Filter yields the pairs for which pred is true.
func (s Seq2[K, V]) Filter(pred func(K, V) bool) Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, v := range s {
			if pred(k, v) && !yield(k, v) {
				return
			}
		}
	}
}

// Keys yields the first column of each pair.
func (s Seq2[K, V]) Keys() Seq[K] {
	return func(yield func(K) bool) {
		for k := range s {
			if !yield(k) {
				return
			}
		}
	}
}

// Values yields the second column of each pair.
func (s Seq2[K, V]) Values() Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// ForEach consumes the sequence, calling action on each pair.
func (s Seq2[K, V]) ForEach(action func(K, V)) {
	for k, v := range s {
		action(k, v)
	}
}

// Count consumes the sequence and returns its length.
func (s Seq2[K, V]) Count() int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Collect consumes the sequence into a slice of pairs.
func (s Seq2[K, V]) Collect() []Pair[K, V] {
	var out []Pair[K, V]
	for k, v := range s {
		out = append(out, Pair[K, V]{Key: k, Value: v})
	}
	return out
}

// Enumerate pairs each element with its zero-based position.
func Enumerate[V any](s Seq[V]) Seq2[int, V] {
	return func(yield func(int, V) bool) {
		i := 0
		for v := range s {
			if !yield(i, v) {
				return
			}
			i++
		}
	}
}

// Zip pairs corresponding elements of a and b, ending when either
// sequence does.
func Zip[A, B any](a Seq[A], b Seq[B]) Seq2[A, B] {
	return func(yield func(A, B) bool) {
		next, stop := iter.Pull(b.Iter())
		defer stop()
		a(func(av A) bool {
			bv, ok := next()
			if !ok {
				return false
			}
			return yield(av, bv)
		})
	}
}

// Map yields f(element) for each element of s.
func Map[V, R any](s Seq[V], f func(V) R) Seq[R] {
	return func(yield func(R) bool) {
		for v := range s {
			if !yield(f(v)) {
				return
			}
		}
	}
}

// Map2 is Map over a pair sequence; the pair unpacks into f's
// parameters.
func Map2[K, V, R any](s Seq2[K, V], f func(K, V) R) Seq[R] {
	return func(yield func(R) bool) {
		for k, v := range s {
			if !yield(f(k, v)) {
				return
			}
		}
	}
}

// Fold consumes the sequence, threading an accumulator through folder.
func Fold[V, A any](s Seq[V], init A, folder func(A, V) A) A {
	acc := init
	for v := range s {
		acc = folder(acc, v)
	}
	return acc
}

// Fold2 is Fold over a pair sequence.
func Fold2[K, V, A any](s Seq2[K, V], init A, folder func(A, K, V) A) A {
	acc := init
	for k, v := range s {
		acc = folder(acc, k, v)
	}
	return acc
}

// GroupBy buckets the elements by key, preserving encounter order
// within each bucket.
func GroupBy[V any, K comparable](s Seq[V], key func(V) K) map[K][]V {
	groups := make(map[K][]V)
	for v := range s {
		k := key(v)
		groups[k] = append(groups[k], v)
	}
	return groups
}

// MinBy returns the element with the smallest key. The first of
// equal-key elements wins. ok is false for an empty sequence.
func MinBy[V any, K cmp.Ordered](s Seq[V], key func(V) K) (min V, ok bool) {
	var minKey K
	for v := range s {
		k := key(v)
		if !ok || k < minKey {
			min, minKey, ok = v, k, true
		}
	}
	return min, ok
}

// MaxBy returns the element with the largest key. The first of
// equal-key elements wins. ok is false for an empty sequence.
func MaxBy[V any, K cmp.Ordered](s Seq[V], key func(V) K) (max V, ok bool) {
	var maxKey K
	for v := range s {
		k := key(v)
		if !ok || k > maxKey {
			max, maxKey, ok = v, k, true
		}
	}
	return max, ok
}
