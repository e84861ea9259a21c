package evo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"tourgene/internal/model"
)

// ErrInvalidConfiguration reports a population configuration the engine
// cannot run with. Construction fails immediately; nothing is retried.
var ErrInvalidConfiguration = errors.New("invalid population configuration")

type Config struct {
	Cities       []model.City
	Size         int
	MutationRate int
	Seed         int64
	Selector     Selector
	Logger       *zap.Logger
}

// Population owns the evolving set of tours for a single run. It is not
// safe for concurrent use; a run owns its population exclusively.
type Population struct {
	cfg     Config
	rng     *rand.Rand
	logger  *zap.Logger
	members []*model.Tour
	history []float64
}

// New validates the configuration, seeds the private random source, and
// builds Size independently shuffled copies of the city set. The size must
// be divisible by 4: each reproduction group contributes two parents plus
// two children, which keeps the population size constant.
func New(cfg Config) (*Population, error) {
	if len(cfg.Cities) == 0 {
		return nil, fmt.Errorf("%w: at least one city is required", ErrInvalidConfiguration)
	}
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("%w: population size must be > 0", ErrInvalidConfiguration)
	}
	if cfg.Size%4 != 0 {
		return nil, fmt.Errorf("%w: population size %d is not divisible by 4", ErrInvalidConfiguration, cfg.Size)
	}
	if cfg.MutationRate <= 0 {
		return nil, fmt.Errorf("%w: mutation rate must be > 0", ErrInvalidConfiguration)
	}
	if cfg.Selector == nil {
		cfg.Selector = MostFit{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	p := &Population{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: cfg.Logger,
	}
	p.generatePopulation()
	return p, nil
}

func (p *Population) generatePopulation() {
	p.members = make([]*model.Tour, 0, p.cfg.Size)
	for i := 0; i < p.cfg.Size; i++ {
		tour := model.NewTour(p.cfg.Cities)
		Shuffle(p.rng, tour)
		p.members = append(p.members, tour)
	}
}

// calculateFitness runs the per-generation statistics pipeline: tour
// distance, normalized distance (share of the population total), its
// inverse (shorter tours score higher), and the renormalized fitness, which
// sums to 1 across the population. The members are then sorted best-first
// and the cumulative fitness distribution is laid over them, with the last
// entry pinned to exactly 1.0 to absorb floating-point drift.
func (p *Population) calculateFitness() {
	totalDistance := 0.0
	for _, member := range p.members {
		member.Distance = member.Length()
		totalDistance += member.Distance
	}

	totalInverse := 0.0
	for _, member := range p.members {
		member.NormedDistance = member.Distance / totalDistance
		member.InverseNormed = 1 - member.NormedDistance
		totalInverse += member.InverseNormed
	}
	for _, member := range p.members {
		member.Fitness = member.InverseNormed / totalInverse
	}

	sort.SliceStable(p.members, func(i, j int) bool {
		return p.members[i].Distance < p.members[j].Distance
	})

	running := 0.0
	for _, member := range p.members {
		running += member.Fitness
		member.CumulativeFitness = running
	}
	p.members[len(p.members)-1].CumulativeFitness = 1.0
}

// RecomputeFitness refreshes all member statistics and re-sorts the
// population best-first. Reporters call this after evolution finishes,
// since the final mutation pass leaves statistics stale.
func (p *Population) RecomputeFitness() {
	p.calculateFitness()
}

// SelectOne draws one member by roulette-wheel selection over the current
// cumulative fitness distribution.
func (p *Population) SelectOne() *model.Tour {
	return rouletteSelect(p.rng, p.members)
}

// AdvanceGeneration runs one full evolutionary step. Fitness is recomputed
// and the outgoing generation's best distance recorded first; then Size/4
// reproduction groups of [parent, parent, child, child] replace the member
// list, and every new member gets a mutation chance. Parents are
// deep-copied before crossover so a tour selected more than once stays
// intact.
func (p *Population) AdvanceGeneration() {
	p.calculateFitness()
	p.history = append(p.history, p.members[0].Distance)

	next := make([]*model.Tour, 0, p.cfg.Size)
	for group := 0; group < p.cfg.Size/4; group++ {
		first, second := p.cfg.Selector.PickPair(p.rng, p.members, group)
		parent1 := first.Clone()
		parent2 := second.Clone()
		child1 := parent1.Clone()
		child2 := parent2.Clone()
		Reproduce(p.rng, child1, child2)
		next = append(next, parent1, parent2, child1, child2)
	}
	p.members = next

	for _, member := range p.members {
		Mutate(p.rng, member, p.cfg.MutationRate, p.logger)
	}
}

// Evolve advances exactly generations steps. There is no convergence
// detection; the caller decides how long to run. The context is checked
// between generations so a run can be abandoned, never rolled back.
func (p *Population) Evolve(ctx context.Context, generations int) error {
	for gen := 0; gen < generations; gen++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.AdvanceGeneration()
	}
	return nil
}

// Members returns the live member slice. It is sorted by fitness only
// immediately after a fitness computation.
func (p *Population) Members() []*model.Tour {
	return p.members
}

// Best returns the member with the lowest tour length, independent of the
// current sort order.
func (p *Population) Best() *model.Tour {
	best := p.members[0]
	bestLength := best.Length()
	for _, member := range p.members[1:] {
		if length := member.Length(); length < bestLength {
			best = member
			bestLength = length
		}
	}
	return best
}

// History returns a copy of the best distance recorded per generation.
func (p *Population) History() []float64 {
	return append([]float64(nil), p.history...)
}

// Size returns the fixed population size.
func (p *Population) Size() int {
	return p.cfg.Size
}
