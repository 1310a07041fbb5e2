package instrument

import (
	"errors"
	"reflect"
	"testing"
)

func fill(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestScore_PHQ9(t *testing.T) {
	tests := []struct {
		name      string
		responses []int
		total     int
		level     string
		color     string
		crisis    bool
	}{
		{"all zero", fill(9, 0), 0, SeverityMinimal, ColorGreen, false},
		{"item nine only", []int{0, 0, 0, 0, 0, 0, 0, 0, 1}, 1, SeverityMinimal, ColorGreen, true},
		{"mild", []int{1, 1, 1, 1, 1, 0, 0, 0, 0}, 5, SeverityMild, ColorYellow, false},
		{"moderate upper", []int{2, 2, 2, 2, 2, 2, 2, 0, 0}, 14, SeverityModerate, ColorOrange, false},
		{"moderately severe", []int{2, 2, 2, 2, 2, 2, 2, 1, 0}, 15, SeverityModeratelySevere, ColorRed, false},
		{"all three", fill(9, 3), 27, SeveritySevere, ColorRed, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Score(PHQ9, tt.responses)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.TotalScore != tt.total {
				t.Errorf("expected total %d, got %d", tt.total, res.TotalScore)
			}
			if res.SeverityLevel != tt.level {
				t.Errorf("expected level %s, got %s", tt.level, res.SeverityLevel)
			}
			if res.Color != tt.color {
				t.Errorf("expected color %s, got %s", tt.color, res.Color)
			}
			if res.CrisisFlagged != tt.crisis {
				t.Errorf("expected crisis %v, got %v", tt.crisis, res.CrisisFlagged)
			}
			if res.SubscaleScores != nil {
				t.Error("expected no subscale scores for a sum instrument")
			}
		})
	}
}

func TestScore_PHQ9TriggerReason(t *testing.T) {
	res, err := Score(PHQ9, []int{0, 0, 0, 0, 0, 0, 0, 0, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Thoughts that you would be better off dead, or of hurting yourself"
	if res.TriggerReason != want {
		t.Errorf("expected trigger %q, got %q", want, res.TriggerReason)
	}

	res, _ = Score(PHQ9, fill(9, 0))
	if res.TriggerReason != "" {
		t.Errorf("expected no trigger, got %q", res.TriggerReason)
	}
}

func TestScore_GAD7Boundaries(t *testing.T) {
	tests := []struct {
		responses []int
		level     string
	}{
		{[]int{1, 1, 1, 1, 0, 0, 0}, SeverityMinimal},
		{[]int{1, 1, 1, 1, 1, 0, 0}, SeverityMild},
		{[]int{2, 2, 2, 2, 2, 0, 0}, SeverityModerate},
		{[]int{3, 3, 3, 3, 3, 0, 0}, SeveritySevere},
	}
	for _, tt := range tests {
		res, err := Score(GAD7, tt.responses)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.SeverityLevel != tt.level {
			t.Errorf("%v: expected %s, got %s", tt.responses, tt.level, res.SeverityLevel)
		}
		if res.CrisisFlagged {
			t.Errorf("%v: GAD7 has no crisis item", tt.responses)
		}
	}
}

func TestScore_WHO5(t *testing.T) {
	res, err := Score(WHO5, fill(5, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalScore != 25 || res.SeverityLevel != SeverityGood || res.Color != ColorGreen {
		t.Errorf("expected 25/good/green, got %d/%s/%s", res.TotalScore, res.SeverityLevel, res.Color)
	}

	res, _ = Score(WHO5, []int{3, 3, 3, 3, 0})
	if res.TotalScore != 12 || res.SeverityLevel != SeverityPoor {
		t.Errorf("expected 12/poor, got %d/%s", res.TotalScore, res.SeverityLevel)
	}
}

func TestScore_K10(t *testing.T) {
	res, err := Score(K10, []int{3, 3, 2, 2, 2, 2, 2, 2, 2, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalScore != 22 || res.SeverityLevel != SeverityMild || res.Color != ColorYellow {
		t.Errorf("expected 22/mild/yellow, got %d/%s/%s", res.TotalScore, res.SeverityLevel, res.Color)
	}

	res, _ = Score(K10, fill(10, 1))
	if res.TotalScore != 10 || res.SeverityLevel != SeverityLow {
		t.Errorf("expected 10/low, got %d/%s", res.TotalScore, res.SeverityLevel)
	}

	// 0 is not a K10 option even though the total would still land in a range.
	_, err = Score(K10, []int{0, 2, 2, 2, 2, 2, 2, 2, 2, 2})
	if !errors.Is(err, ErrInvalidOptionValue) {
		t.Errorf("expected ErrInvalidOptionValue, got %v", err)
	}
}

func TestScore_DASS21AllZero(t *testing.T) {
	res, err := Score(DASS21, fill(21, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &SubscaleScores{
		DepressionSeverity: SeverityNormal,
		AnxietySeverity:    SeverityNormal,
		StressSeverity:     SeverityNormal,
	}
	if !reflect.DeepEqual(res.SubscaleScores, want) {
		t.Errorf("expected %+v, got %+v", want, res.SubscaleScores)
	}
	if res.SeverityLevel != SeverityNormal || res.Color != ColorGreen || res.CrisisFlagged {
		t.Errorf("expected normal/green/no crisis, got %s/%s/%v", res.SeverityLevel, res.Color, res.CrisisFlagged)
	}
}

func TestScore_DASS21AllThree(t *testing.T) {
	res, err := Score(DASS21, fill(21, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub := res.SubscaleScores
	if sub.Depression != 42 || sub.Anxiety != 42 || sub.Stress != 42 {
		t.Errorf("expected 42/42/42, got %d/%d/%d", sub.Depression, sub.Anxiety, sub.Stress)
	}
	if sub.DepressionSeverity != SeveritySevere || sub.AnxietySeverity != SeveritySevere || sub.StressSeverity != SeveritySevere {
		t.Errorf("expected all severe, got %+v", sub)
	}
	if res.TotalScore != 126 {
		t.Errorf("expected total 126, got %d", res.TotalScore)
	}
	if res.SeverityLevel != SeveritySevere || res.Color != ColorRed {
		t.Errorf("expected severe/red, got %s/%s", res.SeverityLevel, res.Color)
	}
	if !res.CrisisFlagged || res.TriggerReason != "I felt that life was meaningless" {
		t.Errorf("expected crisis on item 21, got %v %q", res.CrisisFlagged, res.TriggerReason)
	}
}

func TestScore_DASS21OverallUsesPeakSubscale(t *testing.T) {
	responses := fill(21, 0)
	for _, i := range dassAnxietyItems {
		responses[i] = 2
	}
	res, err := Score(DASS21, responses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Anxiety is 28: severe on its own bands, moderate on the overall scale.
	if res.SubscaleScores.Anxiety != 28 || res.SubscaleScores.AnxietySeverity != SeveritySevere {
		t.Errorf("expected anxiety 28/severe, got %d/%s", res.SubscaleScores.Anxiety, res.SubscaleScores.AnxietySeverity)
	}
	if res.SubscaleScores.DepressionSeverity != SeverityNormal {
		t.Errorf("expected depression normal, got %s", res.SubscaleScores.DepressionSeverity)
	}
	if res.SeverityLevel != SeverityModerate || res.Color != ColorOrange {
		t.Errorf("expected moderate/orange, got %s/%s", res.SeverityLevel, res.Color)
	}
	if res.Feedback.EN == "" || res.Feedback.MS == "" {
		t.Error("expected bilingual feedback")
	}
}

func TestDASSClassify_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		bands []dassBand
		want  string
	}{
		{9, dassDepressionBands, SeverityNormal},
		{10, dassDepressionBands, SeverityMild},
		{20, dassDepressionBands, SeverityModerate},
		{21, dassDepressionBands, SeveritySevere},
		{7, dassAnxietyBands, SeverityNormal},
		{8, dassAnxietyBands, SeverityMild},
		{15, dassAnxietyBands, SeveritySevere},
		{14, dassStressBands, SeverityNormal},
		{26, dassStressBands, SeveritySevere},
	}
	for _, tt := range tests {
		if got := dassClassify(tt.score, tt.bands); got != tt.want {
			t.Errorf("score %d: expected %s, got %s", tt.score, tt.want, got)
		}
	}
}

func TestScore_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		responses []int
		want      error
	}{
		{"unknown instrument", "BDI", []int{0}, ErrUnknownInstrument},
		{"too few", PHQ9, fill(8, 0), ErrInvalidResponseSet},
		{"too many", GAD7, fill(8, 0), ErrInvalidResponseSet},
		{"nil responses", WHO5, nil, ErrInvalidResponseSet},
		{"unanswered", PHQ9, []int{0, 0, Unanswered, 0, 0, 0, 0, 0, 0}, ErrInvalidOptionValue},
		{"above scale", GAD7, []int{0, 0, 0, 4, 0, 0, 0}, ErrInvalidOptionValue},
		{"who5 six", WHO5, []int{6, 0, 0, 0, 0}, ErrInvalidOptionValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Score(tt.id, tt.responses)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if res != nil {
				t.Error("expected no result on error")
			}
		})
	}
}

func TestScore_Idempotent(t *testing.T) {
	responses := []int{2, 1, 0, 3, 1, 2, 0, 1, 1}
	a, err := Score(PHQ9, responses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := Score(PHQ9, responses)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical results, got %+v and %+v", a, b)
	}
}

func TestScore_FirstCrisisItemWins(t *testing.T) {
	inst := &Instrument{
		ID: "TWO",
		Questions: []Question{
			{Index: 0, Text: LocalizedText{EN: "first flagged"}, Options: frequencyOptions, CrisisFlag: true},
			{Index: 1, Text: LocalizedText{EN: "plain"}, Options: frequencyOptions},
			{Index: 2, Text: LocalizedText{EN: "second flagged"}, Options: frequencyOptions, CrisisFlag: true},
		},
		ScoringType:    ScoringSum,
		SeverityRanges: []SeverityRange{{0, 9, "all", ColorGreen, LocalizedText{}}},
	}
	if err := Validate(inst); err != nil {
		t.Fatalf("test instrument invalid: %v", err)
	}

	res, err := inst.Score([]int{1, 0, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TriggerReason != "first flagged" {
		t.Errorf("expected first flagged item, got %q", res.TriggerReason)
	}

	res, _ = inst.Score([]int{0, 3, 2})
	if !res.CrisisFlagged || res.TriggerReason != "second flagged" {
		t.Errorf("expected second flagged item, got %v %q", res.CrisisFlagged, res.TriggerReason)
	}
}

func TestScore_OutOfRangeSignalsBrokenTable(t *testing.T) {
	inst := testInstrument(SeverityRange{0, 2, "low", ColorGreen, LocalizedText{}})
	_, err := inst.Score([]int{3, 3})
	if !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange, got %v", err)
	}
}
