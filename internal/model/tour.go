package model

import "strings"

// Tour is one candidate solution: an ordering of the full city set together
// with the fitness statistics the population computes each generation. The
// statistic fields are always present and default to zero until the next
// fitness pass fills them in.
type Tour struct {
	Order []City

	Distance          float64
	NormedDistance    float64
	InverseNormed     float64
	Fitness           float64
	CumulativeFitness float64
}

// NewTour builds a tour over a private copy of cities, in the given order.
func NewTour(cities []City) *Tour {
	order := make([]City, len(cities))
	copy(order, cities)
	return &Tour{Order: order}
}

// Length is the closed-loop tour distance: the sum of consecutive hops plus
// the hop from the last city back to the first. A single city has length 0.
func (t *Tour) Length() float64 {
	if len(t.Order) < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < len(t.Order)-1; i++ {
		total += t.Order[i].Dist(t.Order[i+1])
	}
	total += t.Order[len(t.Order)-1].Dist(t.Order[0])
	return total
}

// Clone deep-copies the tour, statistics included.
func (t *Tour) Clone() *Tour {
	clone := *t
	clone.Order = make([]City, len(t.Order))
	copy(clone.Order, t.Order)
	return &clone
}

// Equal compares city orderings position by position, ignoring statistics.
func (t *Tour) Equal(other *Tour) bool {
	if len(t.Order) != len(other.Order) {
		return false
	}
	for i := range t.Order {
		if !t.Order[i].Equal(other.Order[i]) {
			return false
		}
	}
	return true
}

// Labels returns the city labels in tour order.
func (t *Tour) Labels() []string {
	labels := make([]string, len(t.Order))
	for i, city := range t.Order {
		labels[i] = city.Label
	}
	return labels
}

func (t *Tour) String() string {
	return "[" + strings.Join(t.Labels(), ", ") + "]"
}
