package assessment

import "errors"

var (
	ErrConsentRequired  = errors.New("consent required before submitting assessments")
	ErrNotFound         = errors.New("assessment not found")
	ErrNotCrisisFlagged = errors.New("assessment is not crisis-flagged")
)
