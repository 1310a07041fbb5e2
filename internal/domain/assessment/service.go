package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mindwell/mindwell/internal/domain/instrument"
	"github.com/mindwell/mindwell/internal/platform/db"
)

// DashboardRecent is the number of records shown on the dashboard.
const DashboardRecent = 10

type Service struct {
	assessments AssessmentRepository
	crisisLogs  CrisisLogRepository
	tx          db.Transactor
	cache       DashboardCache
	consent     ConsentChecker
	now         func() time.Time
}

func NewService(assessments AssessmentRepository, crisisLogs CrisisLogRepository, tx db.Transactor) *Service {
	if tx == nil {
		tx = db.NoTx{}
	}
	return &Service{
		assessments: assessments,
		crisisLogs:  crisisLogs,
		tx:          tx,
		now:         time.Now,
	}
}

// SetCache attaches an optional dashboard cache.
func (s *Service) SetCache(c DashboardCache) {
	s.cache = c
}

// SetConsentChecker makes Submit refuse users who have not consented.
func (s *Service) SetConsentChecker(c ConsentChecker) {
	s.consent = c
}

// Submit scores responses, stores the record and returns it. Scoring errors
// come back unchanged and nothing is stored.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, instrumentID string, responses []int) (*Submission, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user_id is required")
	}
	if instrumentID == "" {
		return nil, fmt.Errorf("instrument_id is required")
	}
	if s.consent != nil {
		ok, err := s.consent.HasConsented(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("check consent: %w", err)
		}
		if !ok {
			return nil, ErrConsentRequired
		}
	}

	res, err := instrument.Score(instrumentID, responses)
	if err != nil {
		return nil, err
	}

	rec := newRecord(userID, instrumentID, responses, res, s.now().UTC())
	if err := s.assessments.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("store assessment: %w", err)
	}
	s.invalidate(ctx, userID)

	sub := &Submission{Record: rec}
	if rec.CrisisFlagged {
		sub.CrisisResources = CrisisResources()
	}
	return sub, nil
}

// Get returns one of the user's records. Records owned by someone else are
// reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*AssessmentRecord, error) {
	rec, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*AssessmentRecord, int, error) {
	return s.assessments.ListByUser(ctx, userID, limit, offset)
}

// CurrentRisk runs RiskLevel over the user's most recent records.
func (s *Service) CurrentRisk(ctx context.Context, userID uuid.UUID) (Risk, error) {
	recent, err := s.assessments.ListRecent(ctx, userID, RiskWindow)
	if err != nil {
		return Risk{}, err
	}
	return RiskLevel(recent), nil
}

// Dashboard returns the user's summary, from the cache when it holds one.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	log := zerolog.Ctx(ctx)
	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		d, v, err := s.cache.Get(ctx, userID)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("dashboard cache read failed")
		case d != nil:
			return d, nil
		default:
			version, cacheable = v, true
		}
	}

	recent, total, err := s.assessments.ListByUser(ctx, userID, DashboardRecent, 0)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []*AssessmentRecord{}
	}
	d := &Dashboard{
		TotalAssessments: total,
		Risk:             RiskLevel(recent),
		Recent:           recent,
	}
	if len(recent) > 0 {
		last := recent[0].CompletedAt
		d.LastCompletedAt = &last
	}

	if cacheable {
		if err := s.cache.Set(ctx, userID, version, d); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("dashboard cache write failed")
		}
	}
	return d, nil
}

// AcknowledgeCrisis records that the user saw the crisis resources for a
// flagged assessment.
func (s *Service) AcknowledgeCrisis(ctx context.Context, userID, assessmentID uuid.UUID) (*CrisisLog, error) {
	var entry *CrisisLog
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rec, err := s.Get(ctx, userID, assessmentID)
		if err != nil {
			return err
		}
		if !rec.CrisisFlagged {
			return ErrNotCrisisFlagged
		}
		entry = &CrisisLog{
			UserID:        userID,
			AssessmentID:  rec.ID,
			TriggerReason: rec.TriggerReason,
			Acknowledged:  true,
		}
		return s.crisisLogs.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) ListCrisisLogs(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*CrisisLog, int, error) {
	return s.crisisLogs.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) CrisisResources() []CrisisResource {
	return CrisisResources()
}

func (s *Service) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("user_id", userID.String()).Msg("dashboard cache invalidation failed")
	}
}

// IsScoringInputError reports whether err was caused by the caller's input
// rather than by the catalog or the store.
func IsScoringInputError(err error) bool {
	return errors.Is(err, instrument.ErrInvalidResponseSet) ||
		errors.Is(err, instrument.ErrInvalidOptionValue)
}
