package turbulence_test

import (
	"fmt"

	"github.com/cwbudde/alds-harness/stats/turbulence"
)

func ExampleSummarize() {
	k := []float64{1, 2, 3, 4}
	e := []float64{0, 2, 2, 0}
	s := turbulence.Summarize(e, k)
	fmt.Printf("total=%.0f peak_k=%.0f centroid=%.1f\n", s.Total, s.PeakWaveNumber, s.Centroid)
	// Output:
	// total=4 peak_k=2 centroid=2.5
}
