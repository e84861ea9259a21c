package evo

import (
	"fmt"
	"math/rand"

	"tourgene/internal/model"
)

// Selector chooses one parent pair per reproduction group from the
// fitness-sorted members.
type Selector interface {
	Name() string
	PickPair(rng *rand.Rand, members []*model.Tour, group int) (*model.Tour, *model.Tour)
}

// MostFit pairs the sorted members positionally: group i reproduces members
// 2i and 2i+1, so only the fitter half of the population gets offspring.
// This is the default generation strategy.
type MostFit struct{}

func (MostFit) Name() string { return "most_fit" }

func (MostFit) PickPair(_ *rand.Rand, members []*model.Tour, group int) (*model.Tour, *model.Tour) {
	return members[2*group], members[2*group+1]
}

// Roulette draws both parents independently by fitness-proportionate
// selection over the cumulative fitness distribution.
type Roulette struct{}

func (Roulette) Name() string { return "roulette" }

func (Roulette) PickPair(rng *rand.Rand, members []*model.Tour, _ int) (*model.Tour, *model.Tour) {
	return rouletteSelect(rng, members), rouletteSelect(rng, members)
}

// NewSelector resolves a selector by name; the empty name means the
// default.
func NewSelector(name string) (Selector, error) {
	switch name {
	case "", "most_fit":
		return MostFit{}, nil
	case "roulette":
		return Roulette{}, nil
	default:
		return nil, fmt.Errorf("unknown selector: %s", name)
	}
}

// rouletteSelect returns the first member whose cumulative fitness range
// [previous, current) contains a uniform draw in [0,1). When floating-point
// drift leaves no range matching, the last member wins.
func rouletteSelect(rng *rand.Rand, members []*model.Tour) *model.Tour {
	r := rng.Float64()
	prev := 0.0
	for _, member := range members {
		if prev <= r && r < member.CumulativeFitness {
			return member
		}
		prev = member.CumulativeFitness
	}
	return members[len(members)-1]
}
