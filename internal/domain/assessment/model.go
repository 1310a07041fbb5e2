package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/mindwell/internal/domain/instrument"
)

// AssessmentRecord maps to the assessments table. Records are written once
// and never updated.
type AssessmentRecord struct {
	ID             uuid.UUID                  `db:"id" json:"id"`
	UserID         uuid.UUID                  `db:"user_id" json:"user_id"`
	InstrumentID   string                     `db:"instrument_id" json:"instrument_id"`
	Responses      []int                      `db:"responses" json:"responses"`
	TotalScore     int                        `db:"total_score" json:"total_score"`
	SeverityLevel  string                     `db:"severity_level" json:"severity_level"`
	Color          string                     `db:"color" json:"color"`
	Feedback       instrument.LocalizedText   `json:"feedback"`
	SubscaleScores *instrument.SubscaleScores `db:"subscale_scores" json:"subscale_scores,omitempty"`
	CrisisFlagged  bool                       `db:"crisis_flagged" json:"crisis_flagged"`
	TriggerReason  string                     `db:"trigger_reason" json:"trigger_reason,omitempty"`
	CompletedAt    time.Time                  `db:"completed_at" json:"completed_at"`
	CreatedAt      time.Time                  `db:"created_at" json:"created_at"`
}

func newRecord(userID uuid.UUID, instrumentID string, responses []int, res *instrument.ScoringResult, now time.Time) *AssessmentRecord {
	stored := make([]int, len(responses))
	copy(stored, responses)
	return &AssessmentRecord{
		UserID:         userID,
		InstrumentID:   instrumentID,
		Responses:      stored,
		TotalScore:     res.TotalScore,
		SeverityLevel:  res.SeverityLevel,
		Color:          res.Color,
		Feedback:       res.Feedback,
		SubscaleScores: res.SubscaleScores,
		CrisisFlagged:  res.CrisisFlagged,
		TriggerReason:  res.TriggerReason,
		CompletedAt:    now,
	}
}

// CrisisLog maps to the crisis_logs table.
type CrisisLog struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	AssessmentID  uuid.UUID `db:"assessment_id" json:"assessment_id"`
	TriggerReason string    `db:"trigger_reason" json:"trigger_reason"`
	Acknowledged  bool      `db:"acknowledged" json:"acknowledged"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Submission is what Submit hands back: the stored record and, when the
// record is crisis-flagged, the hotlines to show.
type Submission struct {
	Record          *AssessmentRecord `json:"record"`
	CrisisResources []CrisisResource  `json:"crisis_resources,omitempty"`
}

// Dashboard summarizes a user's history.
type Dashboard struct {
	TotalAssessments int                 `json:"total_assessments"`
	LastCompletedAt  *time.Time          `json:"last_completed_at,omitempty"`
	Risk             Risk                `json:"risk"`
	Recent           []*AssessmentRecord `json:"recent"`
}
