package evo

import (
	"math/rand"

	"go.uber.org/zap"

	"tourgene/internal/model"
)

// Shuffle randomizes the tour order uniformly. Used only when seeding a
// fresh population.
func Shuffle(rng *rand.Rand, t *model.Tour) {
	rng.Shuffle(len(t.Order), func(i, j int) {
		t.Order[i], t.Order[j] = t.Order[j], t.Order[i]
	})
}

// Mutate swaps two positions drawn with replacement, with probability
// 1/rate. Drawing the same index twice is a legal no-op swap. Mutation is
// deliberately rare; it is the only source of diversity beyond crossover.
func Mutate(rng *rand.Rand, t *model.Tour, rate int, logger *zap.Logger) {
	if rng.Intn(rate) != 0 {
		return
	}
	i := rng.Intn(len(t.Order))
	j := rng.Intn(len(t.Order))
	t.Order[i], t.Order[j] = t.Order[j], t.Order[i]
	if logger != nil {
		logger.Debug("mutation occurred",
			zap.String("city_a", t.Order[i].Label),
			zap.String("city_b", t.Order[j].Label),
		)
	}
}

// Reproduce crosses a and b in place with order crossover, overwriting both
// with their two children. The pick range is start in [0,n) and end in
// [0,n]; drawing start == end is a legal degenerate case that leaves both
// parents untouched.
func Reproduce(rng *rand.Rand, a, b *model.Tour) {
	n := len(a.Order)
	start := rng.Intn(n)
	end := rng.Intn(n + 1)
	crossoverPair(start, end, a, b)
}

// crossoverPair applies the branch matching the relative index order. The
// two branches carry distinct transplant semantics on purpose; unifying
// them would change convergence behavior.
func crossoverPair(start, end int, a, b *model.Tour) {
	if start == end {
		return
	}
	childA := make([]model.City, len(a.Order))
	childB := make([]model.City, len(b.Order))
	copy(childA, a.Order)
	copy(childB, b.Order)
	if start < end {
		inclusiveCrossover(start, end, b.Order, childA)
		inclusiveCrossover(start, end, a.Order, childB)
	} else {
		exclusiveCrossover(start, end, b.Order, childA)
		exclusiveCrossover(start, end, a.Order, childB)
	}
	a.Order = childA
	b.Order = childB
}

// inclusiveCrossover handles start < end. The child keeps its own
// [start,end) slice; the positions before start and after end are filled
// from src in relative order, scanning circularly from index start and
// skipping cities already fixed by the kept slice.
func inclusiveCrossover(start, end int, src, dst []model.City) {
	n := len(dst)
	fixed := make(map[model.City]bool, end-start)
	for i := start; i < end; i++ {
		fixed[dst[i]] = true
	}

	srcI := start
	for dstI := 0; dstI < start; {
		if !fixed[src[srcI]] {
			dst[dstI] = src[srcI]
			dstI++
		}
		srcI = (srcI + 1) % n
	}
	for dstI := end; dstI < n; {
		if !fixed[src[srcI]] {
			dst[dstI] = src[srcI]
			dstI++
		}
		srcI = (srcI + 1) % n
	}
}

// exclusiveCrossover handles start > end, where the pick wraps around. The
// child keeps its own [0,end) and [start,n) ranges; the gap [end,start) is
// filled from src, scanning circularly from start and skipping fixed
// cities.
func exclusiveCrossover(start, end int, src, dst []model.City) {
	n := len(dst)
	fixed := make(map[model.City]bool, n-(start-end))
	for i := 0; i < end; i++ {
		fixed[dst[i]] = true
	}
	for i := start; i < n; i++ {
		fixed[dst[i]] = true
	}

	srcI := start
	for dstI := end; dstI < start; {
		if !fixed[src[srcI]] {
			dst[dstI] = src[srcI]
			dstI++
		}
		srcI = (srcI + 1) % n
	}
}
