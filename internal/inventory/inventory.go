package inventory

import (
	"math/rand"
	"sort"

	"github.com/alertscope/alertscope/internal/swis"
)

// Presentation modes for Arrange.
const (
	ModeSorted = "sorted"
	ModeRandom = "random"
)

// Merge concatenates the three discovery results into one element list:
// nodes first, then interfaces, then volumes, each preserving its query's
// row order. No deduplication: an interface and its owning node both
// legitimately appear as separate elements.
func Merge(nodes, interfaces, volumes []swis.Element) []swis.Element {
	out := make([]swis.Element, 0, len(nodes)+len(interfaces)+len(volumes))
	out = append(out, nodes...)
	out = append(out, interfaces...)
	out = append(out, volumes...)
	return out
}

// SortByCaption returns a copy of els ordered by caption, ascending.
// The sort is stable, so elements sharing a caption (a node and its
// sub-elements) keep their merge order.
func SortByCaption(els []swis.Element) []swis.Element {
	out := make([]swis.Element, len(els))
	copy(out, els)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Caption < out[j].Caption
	})
	return out
}

// Sample returns a uniform random sample of size elements drawn from els
// without replacement. When size is at least len(els) a copy of the full
// list is returned. The rng is injected so constrained test runs can be
// made deterministic.
func Sample(els []swis.Element, size int, rng *rand.Rand) []swis.Element {
	if size >= len(els) {
		out := make([]swis.Element, len(els))
		copy(out, els)
		return out
	}
	out := make([]swis.Element, 0, size)
	for _, idx := range rng.Perm(len(els))[:size] {
		out = append(out, els[idx])
	}
	return out
}

// Arrange applies the configured presentation mode to the merged element
// list. The two modes are mutually exclusive: sorted for sequential runs,
// random for fixed-size debug samples.
func Arrange(els []swis.Element, mode string, size int, rng *rand.Rand) []swis.Element {
	if mode == ModeRandom {
		return Sample(els, size, rng)
	}
	return SortByCaption(els)
}
