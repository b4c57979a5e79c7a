// SPDX-License-Identifier: MIT

package certainty

// Severity is a display band derived from a confidence value.
type Severity int

const (
	// Monitor: confidence below 0.4.
	Monitor Severity = iota

	// ScheduleSoon: confidence in [0.4, 0.8].
	ScheduleSoon

	// Urgent: confidence above 0.8.
	Urgent
)

// Band thresholds used by Classify.
const (
	UrgentAbove      = 0.8
	ScheduleSoonFrom = 0.4
)

// Classify maps a confidence onto its severity band:
//
//	c > 0.8        → Urgent
//	0.4 ≤ c ≤ 0.8  → ScheduleSoon
//	c < 0.4        → Monitor
func Classify(confidence float64) Severity {
	switch {
	case confidence > UrgentAbove:
		return Urgent
	case confidence >= ScheduleSoonFrom:
		return ScheduleSoon
	default:
		return Monitor
	}
}

// Top classifies the highest-ranked diagnosis. ok is false for an empty list.
func Top(ds []Diagnosis) (sev Severity, ok bool) {
	if len(ds) == 0 {
		return Monitor, false
	}

	return Classify(ds[0].Confidence), true
}

// String returns the human label of the band.
func (s Severity) String() string {
	switch s {
	case Urgent:
		return "high/urgent"
	case ScheduleSoon:
		return "schedule soon"
	case Monitor:
		return "monitor"
	default:
		return "unknown"
	}
}

// Advice returns short follow-up lines for the band.
func (s Severity) Advice() []string {
	switch s {
	case Urgent:
		return []string{"Safety may be compromised", "Repair immediately"}
	case ScheduleSoon:
		return []string{"Problem detected", "Schedule within 1-2 weeks"}
	default:
		return []string{"Minor issue detected", "Address during next service"}
	}
}
