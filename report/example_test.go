package report_test

import (
	"fmt"

	"github.com/katalvlaran/lvlogic/certainty"
	"github.com/katalvlaran/lvlogic/report"
)

// ExampleBanner prints the overall assessment for a 0.85 top confidence.
func ExampleBanner() {
	for _, l := range report.Banner(certainty.Classify(0.85)) {
		fmt.Println(l)
	}
	fmt.Println(report.RiskBand(89.7))

	// Output:
	// URGENT ATTENTION REQUIRED
	// Safety may be compromised
	// Repair immediately
	// very high
}
