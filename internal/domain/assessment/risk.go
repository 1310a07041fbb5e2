package assessment

import "github.com/mindwell/mindwell/internal/domain/instrument"

// Aggregate risk labels.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// RiskWindow is how many of the most recent records feed RiskLevel.
const RiskWindow = 5

type Risk struct {
	Level string `json:"level"`
	Color string `json:"color"`
}

// RiskLevel classifies a history ordered most recent first. Only the first
// RiskWindow records are considered.
//
// High: any crisis flag, or two or more severe/moderately severe results.
// Medium: exactly one severe/moderately severe result, or any moderate one.
// Low otherwise, including an empty history.
func RiskLevel(history []*AssessmentRecord) Risk {
	if len(history) > RiskWindow {
		history = history[:RiskWindow]
	}

	severe, moderate := 0, 0
	for _, r := range history {
		if r.CrisisFlagged {
			return Risk{Level: RiskHigh, Color: instrument.ColorRed}
		}
		switch r.SeverityLevel {
		case instrument.SeveritySevere, instrument.SeverityModeratelySevere:
			severe++
		case instrument.SeverityModerate:
			moderate++
		}
	}

	switch {
	case severe >= 2:
		return Risk{Level: RiskHigh, Color: instrument.ColorRed}
	case severe == 1 || moderate > 0:
		return Risk{Level: RiskMedium, Color: instrument.ColorYellow}
	default:
		return Risk{Level: RiskLow, Color: instrument.ColorGreen}
	}
}
