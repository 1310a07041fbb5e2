package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/mindwell/internal/domain/instrument"
	"github.com/mindwell/mindwell/internal/platform/db"
)

type sqlQueryable interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func sqliteConn(ctx context.Context, sqlDB *sql.DB) sqlQueryable {
	if tx := db.SQLTxFromContext(ctx); tx != nil {
		return tx
	}
	return sqlDB
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// =========== Assessment Repository ===========

type assessmentRepoSQLite struct{ db *sql.DB }

func NewAssessmentRepoSQLite(sqlDB *sql.DB) AssessmentRepository {
	return &assessmentRepoSQLite{db: sqlDB}
}

func (r *assessmentRepoSQLite) scanRecord(row rowScanner) (*AssessmentRecord, error) {
	var (
		a                      AssessmentRecord
		id, userID             string
		responses              string
		subscales              sql.NullString
		completedAt, createdAt string
	)
	err := row.Scan(&id, &userID, &a.InstrumentID, &responses, &a.TotalScore, &a.SeverityLevel, &a.Color,
		&a.Feedback.EN, &a.Feedback.MS, &subscales, &a.CrisisFlagged, &a.TriggerReason, &completedAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if a.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	if a.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parse user_id: %w", err)
	}
	if err := json.Unmarshal([]byte(responses), &a.Responses); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}
	if subscales.Valid {
		a.SubscaleScores = &instrument.SubscaleScores{}
		if err := json.Unmarshal([]byte(subscales.String), a.SubscaleScores); err != nil {
			return nil, fmt.Errorf("decode subscale_scores: %w", err)
		}
	}
	if a.CompletedAt, err = db.ParseSQLiteTime(completedAt); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = db.ParseSQLiteTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepoSQLite) Create(ctx context.Context, a *AssessmentRecord) error {
	responses, err := json.Marshal(a.Responses)
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}
	var subscales sql.NullString
	if a.SubscaleScores != nil {
		b, err := json.Marshal(a.SubscaleScores)
		if err != nil {
			return fmt.Errorf("encode subscale_scores: %w", err)
		}
		subscales = sql.NullString{String: string(b), Valid: true}
	}

	id := uuid.New()
	createdAt := time.Now().UTC()
	_, err = sqliteConn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO assessments (id, user_id, instrument_id, responses, total_score, severity_level, color,
			feedback_en, feedback_ms, subscale_scores, crisis_flagged, trigger_reason, completed_at, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id.String(), a.UserID.String(), a.InstrumentID, string(responses), a.TotalScore, a.SeverityLevel, a.Color,
		a.Feedback.EN, a.Feedback.MS, subscales, a.CrisisFlagged, a.TriggerReason,
		db.FormatSQLiteTime(a.CompletedAt), db.FormatSQLiteTime(createdAt))
	if err != nil {
		return err
	}
	a.ID = id
	a.CreatedAt = createdAt
	return nil
}

func (r *assessmentRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	return r.scanRecord(sqliteConn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+assessmentCols+` FROM assessments WHERE id = ?`, id.String()))
}

func (r *assessmentRepoSQLite) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*AssessmentRecord, int, error) {
	var total int
	if err := sqliteConn(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assessments WHERE user_id = ?`, userID.String()).Scan(&total); err != nil {
		return nil, 0, err
	}
	items, err := r.list(ctx, `SELECT `+assessmentCols+` FROM assessments WHERE user_id = ?
		ORDER BY completed_at DESC LIMIT ? OFFSET ?`, userID.String(), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *assessmentRepoSQLite) ListRecent(ctx context.Context, userID uuid.UUID, n int) ([]*AssessmentRecord, error) {
	return r.list(ctx, `SELECT `+assessmentCols+` FROM assessments WHERE user_id = ?
		ORDER BY completed_at DESC LIMIT ?`, userID.String(), n)
}

func (r *assessmentRepoSQLite) list(ctx context.Context, query string, args ...interface{}) ([]*AssessmentRecord, error) {
	rows, err := sqliteConn(ctx, r.db).QueryContext(ctx, query, args...)
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

type crisisLogRepoSQLite struct{ db *sql.DB }

func NewCrisisLogRepoSQLite(sqlDB *sql.DB) CrisisLogRepository {
	return &crisisLogRepoSQLite{db: sqlDB}
}

func (r *crisisLogRepoSQLite) Create(ctx context.Context, l *CrisisLog) error {
	id := uuid.New()
	createdAt := time.Now().UTC()
	_, err := sqliteConn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO crisis_logs (id, user_id, assessment_id, trigger_reason, acknowledged, created_at)
		VALUES (?,?,?,?,?,?)`,
		id.String(), l.UserID.String(), l.AssessmentID.String(), l.TriggerReason, l.Acknowledged,
		db.FormatSQLiteTime(createdAt))
	if err != nil {
		return err
	}
	l.ID = id
	l.CreatedAt = createdAt
	return nil
}

func (r *crisisLogRepoSQLite) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*CrisisLog, int, error) {
	conn := sqliteConn(ctx, r.db)
	var total int
	if err := conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM crisis_logs WHERE user_id = ?`, userID.String()).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn.QueryContext(ctx, `SELECT `+crisisLogCols+` FROM crisis_logs WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?`, userID.String(), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*CrisisLog
	for rows.Next() {
		var (
			l                       CrisisLog
			id, uid, aid, createdAt string
		)
		if err := rows.Scan(&id, &uid, &aid, &l.TriggerReason, &l.Acknowledged, &createdAt); err != nil {
			return nil, 0, err
		}
		if l.ID, err = uuid.Parse(id); err != nil {
			return nil, 0, fmt.Errorf("parse id: %w", err)
		}
		if l.UserID, err = uuid.Parse(uid); err != nil {
			return nil, 0, fmt.Errorf("parse user_id: %w", err)
		}
		if l.AssessmentID, err = uuid.Parse(aid); err != nil {
			return nil, 0, fmt.Errorf("parse assessment_id: %w", err)
		}
		if l.CreatedAt, err = db.ParseSQLiteTime(createdAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &l)
	}
	return items, total, rows.Err()
}
