package evo

import (
	"context"
	"errors"
	"math"
	"testing"

	"tourgene/internal/model"
)

func unitSquare() []model.City {
	return []model.City{
		{X: 0, Y: 0, Label: "1"},
		{X: 0, Y: 1, Label: "2"},
		{X: 1, Y: 1, Label: "3"},
		{X: 1, Y: 0, Label: "4"},
	}
}

func newTestPopulation(t *testing.T, cfg Config) *Population {
	t.Helper()
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}
	return p
}

func TestNewPopulationRejectsInvalidConfiguration(t *testing.T) {
	cities := unitSquare()

	cases := []struct {
		name string
		cfg  Config
	}{
		{"no cities", Config{Size: 8, MutationRate: 100}},
		{"zero size", Config{Cities: cities, MutationRate: 100}},
		{"size not divisible by 4", Config{Cities: cities, Size: 6, MutationRate: 100}},
		{"zero mutation rate", Config{Cities: cities, Size: 8}},
	}
	for _, tc := range cases {
		_, err := New(tc.cfg)
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("%s: expected ErrInvalidConfiguration, got %v", tc.name, err)
		}
	}
}

func TestNewPopulationBuildsShuffledPermutations(t *testing.T) {
	cities := ringCities(10)
	p := newTestPopulation(t, Config{Cities: cities, Size: 20, MutationRate: 1000, Seed: 1})

	if len(p.Members()) != 20 {
		t.Fatalf("expected 20 members, got %d", len(p.Members()))
	}
	for _, member := range p.Members() {
		assertSameCitySet(t, cities, member)
	}

	// With 10 cities and 20 independent shuffles, at least two members must
	// differ in order.
	distinct := false
	for _, member := range p.Members()[1:] {
		if !member.Equal(p.Members()[0]) {
			distinct = true
			break
		}
	}
	if !distinct {
		t.Fatal("expected independently shuffled members")
	}
}

func TestFitnessPipeline(t *testing.T) {
	cities := ringCities(8)
	p := newTestPopulation(t, Config{Cities: cities, Size: 16, MutationRate: 1000, Seed: 2})
	p.RecomputeFitness()

	sumNormed := 0.0
	sumFitness := 0.0
	prevDistance := math.Inf(-1)
	prevCumulative := 0.0
	for _, member := range p.Members() {
		sumNormed += member.NormedDistance
		sumFitness += member.Fitness
		if member.Distance < prevDistance {
			t.Fatal("members must be sorted ascending by distance")
		}
		prevDistance = member.Distance
		if member.CumulativeFitness < prevCumulative {
			t.Fatal("cumulative fitness must be non-decreasing")
		}
		prevCumulative = member.CumulativeFitness
	}

	if math.Abs(sumNormed-1.0) > 1e-9 {
		t.Fatalf("normalized distances sum to %v, want 1.0", sumNormed)
	}
	if math.Abs(sumFitness-1.0) > 1e-9 {
		t.Fatalf("fitness values sum to %v, want 1.0", sumFitness)
	}
	last := p.Members()[len(p.Members())-1]
	if last.CumulativeFitness != 1.0 {
		t.Fatalf("last cumulative fitness must be exactly 1.0, got %v", last.CumulativeFitness)
	}
}

func TestAdvanceGenerationInvariants(t *testing.T) {
	cities := ringCities(9)
	p := newTestPopulation(t, Config{Cities: cities, Size: 12, MutationRate: 50, Seed: 3})

	for gen := 1; gen <= 10; gen++ {
		p.AdvanceGeneration()
		if len(p.Members()) != 12 {
			t.Fatalf("generation %d: population size %d, want 12", gen, len(p.Members()))
		}
		for _, member := range p.Members() {
			assertSameCitySet(t, cities, member)
		}
		if len(p.History()) != gen {
			t.Fatalf("generation %d: history length %d", gen, len(p.History()))
		}
	}
}

func TestAdvanceGenerationWithRouletteSelector(t *testing.T) {
	cities := ringCities(8)
	p := newTestPopulation(t, Config{
		Cities:       cities,
		Size:         16,
		MutationRate: 100,
		Seed:         4,
		Selector:     Roulette{},
	})

	for gen := 0; gen < 5; gen++ {
		p.AdvanceGeneration()
	}
	if len(p.Members()) != 16 {
		t.Fatalf("population size %d, want 16", len(p.Members()))
	}
	for _, member := range p.Members() {
		assertSameCitySet(t, cities, member)
	}
}

func TestSelectOneDistribution(t *testing.T) {
	cities := ringCities(6)
	p := newTestPopulation(t, Config{Cities: cities, Size: 8, MutationRate: 1000, Seed: 5})
	p.RecomputeFitness()

	counts := make(map[*model.Tour]int, len(p.Members()))
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[p.SelectOne()]++
	}

	for i, member := range p.Members() {
		got := float64(counts[member]) / draws
		if math.Abs(got-member.Fitness) > 0.02 {
			t.Fatalf("member %d selected with frequency %.3f, want %.3f ± 0.02", i, got, member.Fitness)
		}
	}
}

func TestHistoryIsACopy(t *testing.T) {
	p := newTestPopulation(t, Config{Cities: unitSquare(), Size: 8, MutationRate: 1000, Seed: 6})
	p.AdvanceGeneration()

	history := p.History()
	history[0] = -1
	if p.History()[0] == -1 {
		t.Fatal("History must return a copy")
	}
}

func TestEvolveRunsExactlyNGenerations(t *testing.T) {
	p := newTestPopulation(t, Config{Cities: unitSquare(), Size: 8, MutationRate: 1000, Seed: 7})

	if err := p.Evolve(context.Background(), 25); err != nil {
		t.Fatalf("evolve: %v", err)
	}
	if len(p.History()) != 25 {
		t.Fatalf("history length %d, want 25", len(p.History()))
	}
}

func TestEvolveHonorsContext(t *testing.T) {
	p := newTestPopulation(t, Config{Cities: unitSquare(), Size: 8, MutationRate: 1000, Seed: 8})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Evolve(ctx, 100); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(p.History()) != 0 {
		t.Fatal("cancelled run must not record history")
	}
}

func TestEvolveConvergesOnUnitSquare(t *testing.T) {
	p := newTestPopulation(t, Config{
		Cities:       unitSquare(),
		Size:         32,
		MutationRate: 10000,
		Seed:         1,
	})

	if err := p.Evolve(context.Background(), 100); err != nil {
		t.Fatalf("evolve: %v", err)
	}
	p.RecomputeFitness()

	best := p.Best()
	if math.Abs(best.Length()-4.0) > 1e-9 {
		t.Fatalf("expected convergence to perimeter 4.0, got %v (%s)", best.Length(), best)
	}
	history := p.History()
	if history[len(history)-1] > history[0] {
		t.Fatalf("best distance should not regress overall: first %v, last %v", history[0], history[len(history)-1])
	}
}
