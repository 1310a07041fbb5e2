package assessment

import "github.com/mindwell/mindwell/internal/domain/instrument"

// CrisisResource is a hotline shown alongside a crisis-flagged result.
type CrisisResource struct {
	Name        instrument.LocalizedText `json:"name"`
	Description instrument.LocalizedText `json:"description"`
	Phone       string                   `json:"phone"`
}

var crisisResources = []CrisisResource{
	{
		Name:        instrument.LocalizedText{EN: "Emergency Services", MS: "Perkhidmatan Kecemasan"},
		Description: instrument.LocalizedText{EN: "Police, ambulance and fire", MS: "Polis, ambulans dan bomba"},
		Phone:       "999",
	},
	{
		Name:        instrument.LocalizedText{EN: "Befrienders KL", MS: "Befrienders KL"},
		Description: instrument.LocalizedText{EN: "24-hour emotional support", MS: "Sokongan emosi 24 jam"},
		Phone:       "03-76272929",
	},
	{
		Name:        instrument.LocalizedText{EN: "Talian Kasih", MS: "Talian Kasih"},
		Description: instrument.LocalizedText{EN: "Government support line", MS: "Talian sokongan kerajaan"},
		Phone:       "15999",
	},
}

// CrisisResources returns the fixed hotline list in display order.
func CrisisResources() []CrisisResource {
	out := make([]CrisisResource, len(crisisResources))
	copy(out, crisisResources)
	return out
}
