package assessment

import (
	"testing"

	"github.com/google/uuid"

	"github.com/mindwell/mindwell/internal/domain/instrument"
)

func recs(levels ...string) []*AssessmentRecord {
	out := make([]*AssessmentRecord, len(levels))
	for i, l := range levels {
		out[i] = &AssessmentRecord{SeverityLevel: l}
	}
	return out
}

func TestRiskLevel(t *testing.T) {
	flagged := recs(instrument.SeverityMinimal)
	flagged[0].CrisisFlagged = true

	tests := []struct {
		name    string
		history []*AssessmentRecord
		want    Risk
	}{
		{"empty", nil, Risk{RiskLow, instrument.ColorGreen}},
		{"all mild", recs("mild", "minimal", "normal"), Risk{RiskLow, instrument.ColorGreen}},
		{"one moderate", recs("minimal", "moderate"), Risk{RiskMedium, instrument.ColorYellow}},
		{"one severe", recs("severe", "minimal"), Risk{RiskMedium, instrument.ColorYellow}},
		{"one moderately severe", recs("moderatelySevere"), Risk{RiskMedium, instrument.ColorYellow}},
		{"two severe", recs("severe", "moderatelySevere"), Risk{RiskHigh, instrument.ColorRed}},
		{"two severe of five", recs("minimal", "severe", "mild", "severe", "minimal"), Risk{RiskHigh, instrument.ColorRed}},
		{"crisis flag", flagged, Risk{RiskHigh, instrument.ColorRed}},
		{"severe outside window", recs("minimal", "minimal", "minimal", "minimal", "minimal", "severe", "severe"), Risk{RiskLow, instrument.ColorGreen}},
		{"poor wellbeing is not severe", recs("poor", "poor"), Risk{RiskLow, instrument.ColorGreen}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskLevel(tt.history); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestRiskLevel_FlagOutsideWindowIgnored(t *testing.T) {
	history := recs("minimal", "minimal", "minimal", "minimal", "minimal", "minimal")
	history[5].CrisisFlagged = true
	if got := RiskLevel(history); got.Level != RiskLow {
		t.Errorf("expected low, got %s", got.Level)
	}
}

func TestCrisisResources_ReturnsCopy(t *testing.T) {
	list := CrisisResources()
	if len(list) != 3 || list[0].Phone != "999" {
		t.Fatalf("unexpected resources: %+v", list)
	}
	list[0].Phone = "000"
	if CrisisResources()[0].Phone != "999" {
		t.Error("CrisisResources exposed the internal slice")
	}
}

func TestDashboardKey(t *testing.T) {
	id := uuid.MustParse("7d3c1f4e-2a9b-4c61-8e0f-5b6a7c8d9e01")
	if got := dashboardKey(id); got != "dashboard:7d3c1f4e-2a9b-4c61-8e0f-5b6a7c8d9e01" {
		t.Errorf("unexpected key %q", got)
	}
	if got := dashboardVersionKey(id); got != "dashboard:7d3c1f4e-2a9b-4c61-8e0f-5b6a7c8d9e01:version" {
		t.Errorf("unexpected version key %q", got)
	}
}
