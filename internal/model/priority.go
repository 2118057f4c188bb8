package model

import "fmt"

// Priority is the Low/Medium/High urgency of a task. The integer values match
// the legacy small-int encoding (Low=1, Medium=2, High=3); the database stores
// the label form, and ParsePriority accepts either on read.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Level returns the small-integer encoding.
func (p Priority) Level() int { return int(p) }

// ParsePriority maps either representation back to the enum.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "Low", "1":
		return PriorityLow, nil
	case "Medium", "2":
		return PriorityMedium, nil
	case "High", "3":
		return PriorityHigh, nil
	default:
		return 0, fmt.Errorf("unknown priority %q", s)
	}
}
