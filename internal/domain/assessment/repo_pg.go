package assessment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindwell/mindwell/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func pgConn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

// =========== Assessment Repository ===========

type assessmentRepoPG struct{ pool *pgxpool.Pool }

func NewAssessmentRepoPG(pool *pgxpool.Pool) AssessmentRepository {
	return &assessmentRepoPG{pool: pool}
}

const assessmentCols = `id, user_id, instrument_id, responses, total_score, severity_level, color,
	feedback_en, feedback_ms, subscale_scores, crisis_flagged, trigger_reason, completed_at, created_at`

func (r *assessmentRepoPG) scanRecord(row pgx.Row) (*AssessmentRecord, error) {
	var a AssessmentRecord
	err := row.Scan(&a.ID, &a.UserID, &a.InstrumentID, &a.Responses, &a.TotalScore, &a.SeverityLevel, &a.Color,
		&a.Feedback.EN, &a.Feedback.MS, &a.SubscaleScores, &a.CrisisFlagged, &a.TriggerReason, &a.CompletedAt, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepoPG) Create(ctx context.Context, a *AssessmentRecord) error {
	a.ID = uuid.New()
	return pgConn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO assessments (id, user_id, instrument_id, responses, total_score, severity_level, color,
			feedback_en, feedback_ms, subscale_scores, crisis_flagged, trigger_reason, completed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at`,
		a.ID, a.UserID, a.InstrumentID, a.Responses, a.TotalScore, a.SeverityLevel, a.Color,
		a.Feedback.EN, a.Feedback.MS, a.SubscaleScores, a.CrisisFlagged, a.TriggerReason, a.CompletedAt,
	).Scan(&a.CreatedAt)
}

func (r *assessmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	return r.scanRecord(pgConn(ctx, r.pool).QueryRow(ctx, `SELECT `+assessmentCols+` FROM assessments WHERE id = $1`, id))
}

func (r *assessmentRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*AssessmentRecord, int, error) {
	var total int
	if err := pgConn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM assessments WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	items, err := r.list(ctx, `SELECT `+assessmentCols+` FROM assessments WHERE user_id = $1
		ORDER BY completed_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *assessmentRepoPG) ListRecent(ctx context.Context, userID uuid.UUID, n int) ([]*AssessmentRecord, error) {
	return r.list(ctx, `SELECT `+assessmentCols+` FROM assessments WHERE user_id = $1
		ORDER BY completed_at DESC LIMIT $2`, userID, n)
}

func (r *assessmentRepoPG) list(ctx context.Context, query string, args ...interface{}) ([]*AssessmentRecord, error) {
	rows, err := pgConn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AssessmentRecord
	for rows.Next() {
		a, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// =========== Crisis Log Repository ===========

type crisisLogRepoPG struct{ pool *pgxpool.Pool }

func NewCrisisLogRepoPG(pool *pgxpool.Pool) CrisisLogRepository {
	return &crisisLogRepoPG{pool: pool}
}

const crisisLogCols = `id, user_id, assessment_id, trigger_reason, acknowledged, created_at`

func (r *crisisLogRepoPG) Create(ctx context.Context, l *CrisisLog) error {
	l.ID = uuid.New()
	return pgConn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO crisis_logs (id, user_id, assessment_id, trigger_reason, acknowledged)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		l.ID, l.UserID, l.AssessmentID, l.TriggerReason, l.Acknowledged,
	).Scan(&l.CreatedAt)
}

func (r *crisisLogRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*CrisisLog, int, error) {
	var total int
	if err := pgConn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM crisis_logs WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := pgConn(ctx, r.pool).Query(ctx, `SELECT `+crisisLogCols+` FROM crisis_logs WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*CrisisLog
	for rows.Next() {
		var l CrisisLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.AssessmentID, &l.TriggerReason, &l.Acknowledged, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &l)
	}
	return items, total, rows.Err()
}
