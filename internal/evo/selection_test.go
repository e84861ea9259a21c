package evo

import (
	"math"
	"math/rand"
	"testing"

	"tourgene/internal/model"
)

func TestMostFitPairsPositionally(t *testing.T) {
	cities := ringCities(4)
	members := make([]*model.Tour, 8)
	for i := range members {
		members[i] = model.NewTour(cities)
	}

	selector := MostFit{}
	for group := 0; group < 4; group++ {
		first, second := selector.PickPair(nil, members, group)
		if first != members[2*group] || second != members[2*group+1] {
			t.Fatalf("group %d picked wrong members", group)
		}
	}
}

func TestRouletteSelectMatchesFitnessShares(t *testing.T) {
	cities := ringCities(3)
	shares := []float64{0.4, 0.3, 0.2, 0.1}
	members := make([]*model.Tour, len(shares))
	cumulative := 0.0
	for i, share := range shares {
		members[i] = model.NewTour(cities)
		members[i].Fitness = share
		cumulative += share
		members[i].CumulativeFitness = cumulative
	}
	members[len(members)-1].CumulativeFitness = 1.0

	rng := rand.New(rand.NewSource(7))
	counts := make([]int, len(members))
	const draws = 20000
	for i := 0; i < draws; i++ {
		picked := rouletteSelect(rng, members)
		for j, member := range members {
			if picked == member {
				counts[j]++
			}
		}
	}

	for i, share := range shares {
		got := float64(counts[i]) / draws
		if math.Abs(got-share) > 0.02 {
			t.Fatalf("member %d selected with frequency %.3f, want %.3f ± 0.02", i, got, share)
		}
	}
}

func TestRouletteSelectFallsBackToLast(t *testing.T) {
	cities := ringCities(3)
	members := []*model.Tour{model.NewTour(cities), model.NewTour(cities)}
	// Cumulative fitness left at zero: no range can contain the draw.
	rng := rand.New(rand.NewSource(8))

	for i := 0; i < 20; i++ {
		if picked := rouletteSelect(rng, members); picked != members[1] {
			t.Fatal("expected fallback to the last member")
		}
	}
}

func TestNewSelector(t *testing.T) {
	cases := []struct {
		name     string
		wantName string
	}{
		{"", "most_fit"},
		{"most_fit", "most_fit"},
		{"roulette", "roulette"},
	}
	for _, tc := range cases {
		selector, err := NewSelector(tc.name)
		if err != nil {
			t.Fatalf("NewSelector(%q): %v", tc.name, err)
		}
		if selector.Name() != tc.wantName {
			t.Fatalf("NewSelector(%q) resolved %s", tc.name, selector.Name())
		}
	}

	if _, err := NewSelector("tournament"); err == nil {
		t.Fatal("expected error for unknown selector name")
	}
}
