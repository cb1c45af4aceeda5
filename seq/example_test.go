package seq_test

import (
	"fmt"

	"github.com/warden-ecs/warden/seq"
)

// ExampleSeq demonstrates composing a lazy pipeline. No element is
// visited until the terminal operation runs, and Take stops the
// upstream adapters early.
func ExampleSeq() {
	total := seq.Fold(
		seq.Range(0, 100).
			Filter(func(v int) bool { return v%2 == 0 }).
			Take(5),
		0,
		func(acc, v int) int { return acc + v },
	)

	fmt.Println(total)
	// Output: 20
}

// ExampleZip pairs two sequences, stopping at the shorter one.
func ExampleZip() {
	names := seq.Of("hull", "shield", "engine")
	levels := seq.Of(3, 1)

	seq.Zip(names, levels).ForEach(func(name string, level int) {
		fmt.Printf("%s=%d\n", name, level)
	})
	// Output:
	// hull=3
	// shield=1
}

// ExampleSlide walks overlapping windows over a sequence.
func ExampleSlide() {
	for w := range seq.Slide(seq.Range(1, 6), 3) {
		fmt.Println(w.Collect())
	}
	// Output:
	// [1 2 3]
	// [2 3 4]
	// [3 4 5]
}
