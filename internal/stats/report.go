package stats

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"tourgene/internal/model"
)

// PopulationTable renders the per-member statistics of a fitness-computed
// population, one row per tour, in the order given (best first after a
// fitness pass).
func PopulationTable(members []*model.Tour) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOUR\tDISTANCE\tNORMED\tINVERSE\tFITNESS\tCUMULATIVE")
	for _, member := range members {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\n",
			member,
			member.Distance,
			member.NormedDistance,
			member.InverseNormed,
			member.Fitness,
			member.CumulativeFitness,
		)
	}
	w.Flush()
	return b.String()
}
