package instrument

import "fmt"

// DASS-21 item groupings (0-based question indices). These are properties
// of the published instrument and cannot be derived from anything else in
// the definition.
var (
	dassDepressionItems = [7]int{2, 4, 9, 12, 15, 16, 20}
	dassAnxietyItems    = [7]int{1, 3, 6, 8, 14, 18, 19}
	dassStressItems     = [7]int{0, 5, 7, 10, 11, 13, 17}
)

// dassBand is an inclusive upper bound for a severity label. A score above
// every band is severe.
type dassBand struct {
	upTo  int
	level string
}

// Per-subscale classification on the doubled scores.
var (
	dassDepressionBands = []dassBand{{9, SeverityNormal}, {13, SeverityMild}, {20, SeverityModerate}}
	dassAnxietyBands    = []dassBand{{7, SeverityNormal}, {9, SeverityMild}, {14, SeverityModerate}}
	dassStressBands     = []dassBand{{14, SeverityNormal}, {18, SeverityMild}, {25, SeverityModerate}}
)

// dassOverall classifies the largest subscale score. Thresholds are strict
// lower bounds and differ from the per-subscale bands.
var dassOverall = []struct {
	above int
	level string
	color string
}{
	{33, SeveritySevere, ColorRed},
	{25, SeverityModerate, ColorOrange},
	{14, SeverityMild, ColorYellow},
}

const dassMultiplier = 2

var dassFeedback = struct{ en, ms string }{
	en: "Depression: %s, Anxiety: %s, Stress: %s. Consider speaking with a mental health professional about your results.",
	ms: "Kemurungan: %s, Kebimbangan: %s, Tekanan: %s. Pertimbangkan untuk bercakap dengan profesional kesihatan mental tentang keputusan anda.",
}

func scoreDASS21(responses []int) *ScoringResult {
	dep := dassSubscale(responses, dassDepressionItems)
	anx := dassSubscale(responses, dassAnxietyItems)
	str := dassSubscale(responses, dassStressItems)

	sub := &SubscaleScores{
		Depression:         dep,
		Anxiety:            anx,
		Stress:             str,
		DepressionSeverity: dassClassify(dep, dassDepressionBands),
		AnxietySeverity:    dassClassify(anx, dassAnxietyBands),
		StressSeverity:     dassClassify(str, dassStressBands),
	}

	level, color := SeverityNormal, ColorGreen
	peak := max(dep, anx, str)
	for _, t := range dassOverall {
		if peak > t.above {
			level, color = t.level, t.color
			break
		}
	}

	return &ScoringResult{
		TotalScore:    dep + anx + str,
		SeverityLevel: level,
		Color:         color,
		Feedback: LocalizedText{
			EN: fmt.Sprintf(dassFeedback.en, sub.DepressionSeverity, sub.AnxietySeverity, sub.StressSeverity),
			MS: fmt.Sprintf(dassFeedback.ms, sub.DepressionSeverity, sub.AnxietySeverity, sub.StressSeverity),
		},
		SubscaleScores: sub,
	}
}

func dassSubscale(responses []int, items [7]int) int {
	sum := 0
	for _, i := range items {
		sum += responses[i]
	}
	return sum * dassMultiplier
}

func dassClassify(score int, bands []dassBand) string {
	for _, b := range bands {
		if score <= b.upTo {
			return b.level
		}
	}
	return SeveritySevere
}

// validateSubscales checks that the three groupings are disjoint and cover
// every question exactly once.
func validateSubscales(inst *Instrument) error {
	seen := make(map[int]string, len(inst.Questions))
	groups := []struct {
		name  string
		items [7]int
	}{
		{"depression", dassDepressionItems},
		{"anxiety", dassAnxietyItems},
		{"stress", dassStressItems},
	}
	for _, g := range groups {
		for _, i := range g.items {
			if i < 0 || i >= len(inst.Questions) {
				return fmt.Errorf("%s: %s item %d out of range", inst.ID, g.name, i)
			}
			if other, ok := seen[i]; ok {
				return fmt.Errorf("%s: item %d is in both %s and %s", inst.ID, i, other, g.name)
			}
			seen[i] = g.name
		}
	}
	if len(seen) != len(inst.Questions) {
		return fmt.Errorf("%s: subscales cover %d of %d items", inst.ID, len(seen), len(inst.Questions))
	}
	return nil
}
