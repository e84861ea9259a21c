// Package brute holds the exhaustive baseline solver used to sanity-check
// the genetic engine on small instances. Cost grows factorially with the
// city count.
package brute

import (
	"context"
	"fmt"

	"tourgene/internal/model"
)

// Solve searches every closed tour over the city set and returns the
// shortest one, with its Distance field filled in. The first city stays
// fixed since a closed tour is rotation invariant. The context is checked
// as the search descends, so long searches can be cancelled.
func Solve(ctx context.Context, cities []model.City) (*model.Tour, error) {
	if len(cities) == 0 {
		return nil, fmt.Errorf("at least one city is required")
	}

	s := &solver{tour: model.NewTour(cities)}
	s.best = s.tour.Clone()
	s.bestLength = s.best.Length()

	if err := s.permute(ctx, 1); err != nil {
		return nil, err
	}
	s.best.Distance = s.bestLength
	return s.best, nil
}

type solver struct {
	tour       *model.Tour
	best       *model.Tour
	bestLength float64
}

func (s *solver) permute(ctx context.Context, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	order := s.tour.Order
	if index == len(order) {
		if length := s.tour.Length(); length < s.bestLength {
			s.bestLength = length
			s.best = s.tour.Clone()
		}
		return nil
	}
	for i := index; i < len(order); i++ {
		order[index], order[i] = order[i], order[index]
		if err := s.permute(ctx, index+1); err != nil {
			return err
		}
		order[index], order[i] = order[i], order[index]
	}
	return nil
}
