package stats

// CurvePoint is one sample of the learning curve.
type CurvePoint struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
}

// LearningCurve downsamples a best-distance history to roughly resolution
// points. The final generation is always included so the curve ends on the
// run's last best value.
func LearningCurve(history []float64, resolution int) []CurvePoint {
	if len(history) == 0 {
		return nil
	}
	if resolution <= 0 {
		resolution = 100
	}
	step := len(history) / resolution
	if step == 0 {
		step = 1
	}

	points := make([]CurvePoint, 0, resolution+1)
	for i := 0; i < len(history); i += step {
		points = append(points, CurvePoint{Generation: i, Best: history[i]})
	}
	last := len(history) - 1
	if points[len(points)-1].Generation != last {
		points = append(points, CurvePoint{Generation: last, Best: history[last]})
	}
	return points
}
