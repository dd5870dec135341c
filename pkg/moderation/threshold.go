package moderation

import "fmt"

// Threshold is a severity cutoff on the four-severity scale (0, 2, 4, 6).
// A category hits when its severity is greater than or equal to the
// threshold, so a numerically LOWER threshold is STRICTER. The names read
// as filter aggressiveness: Low lets everything but the most severe content
// through, High trips on almost anything.
type Threshold int

const (
	ThresholdLow    Threshold = 6
	ThresholdMedium Threshold = 4
	ThresholdHigh   Threshold = 2
)

func (t Threshold) String() string {
	switch t {
	case ThresholdLow:
		return "low"
	case ThresholdMedium:
		return "medium"
	case ThresholdHigh:
		return "high"
	default:
		return fmt.Sprintf("threshold(%d)", int(t))
	}
}

// ParseThreshold maps a configured level name to its cutoff.
func ParseThreshold(name string) (Threshold, error) {
	switch name {
	case "low":
		return ThresholdLow, nil
	case "medium":
		return ThresholdMedium, nil
	case "high":
		return ThresholdHigh, nil
	default:
		return 0, fmt.Errorf("unknown threshold level %q (want low, medium or high)", name)
	}
}
