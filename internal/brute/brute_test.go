package brute

import (
	"context"
	"errors"
	"math"
	"testing"

	"tourgene/internal/model"
)

func TestSolveUnitSquare(t *testing.T) {
	cities := []model.City{
		{X: 0, Y: 0, Label: "1"},
		{X: 1, Y: 1, Label: "3"},
		{X: 0, Y: 1, Label: "2"},
		{X: 1, Y: 0, Label: "4"},
	}

	best, err := Solve(context.Background(), cities)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if math.Abs(best.Distance-4.0) > 1e-12 {
		t.Fatalf("expected optimal distance 4.0, got %v", best.Distance)
	}
	if math.Abs(best.Length()-best.Distance) > 1e-12 {
		t.Fatal("reported distance must match the tour length")
	}
}

func TestSolveSingleCity(t *testing.T) {
	best, err := Solve(context.Background(), []model.City{{X: 5, Y: 5, Label: "1"}})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if best.Distance != 0 {
		t.Fatalf("expected distance 0, got %v", best.Distance)
	}
}

func TestSolveEmptyInput(t *testing.T) {
	if _, err := Solve(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty city list")
	}
}

func TestSolveBeatsArbitraryOrder(t *testing.T) {
	cities := []model.City{
		{X: 1, Y: 1, Label: "1"},
		{X: 5, Y: 4, Label: "2"},
		{X: 4, Y: 8, Label: "3"},
		{X: 3, Y: 5, Label: "4"},
		{X: 7, Y: 6, Label: "5"},
		{X: 2, Y: 4, Label: "6"},
	}

	best, err := Solve(context.Background(), cities)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	arbitrary := model.NewTour(cities)
	if best.Distance > arbitrary.Length()+1e-12 {
		t.Fatalf("optimal %v must not exceed the input order %v", best.Distance, arbitrary.Length())
	}
}

func TestSolveHonorsContext(t *testing.T) {
	cities := make([]model.City, 10)
	for i := range cities {
		cities[i] = model.City{X: float64(i), Y: float64(i * i), Label: string(rune('a' + i))}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Solve(ctx, cities); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
