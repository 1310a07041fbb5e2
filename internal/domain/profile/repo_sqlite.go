package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/mindwell/internal/platform/db"
)

type sqlQueryable interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func sqliteConn(ctx context.Context, sqlDB *sql.DB) sqlQueryable {
	if tx := db.SQLTxFromContext(ctx); tx != nil {
		return tx
	}
	return sqlDB
}

type repoSQLite struct{ db *sql.DB }

func NewRepoSQLite(sqlDB *sql.DB) Repository {
	return &repoSQLite{db: sqlDB}
}

func (r *repoSQLite) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var (
		p                    Profile
		uid                  string
		consentDate          sql.NullString
		createdAt, updatedAt string
	)
	err := sqliteConn(ctx, r.db).QueryRowContext(ctx, `SELECT `+profileCols+` FROM profiles WHERE user_id = ?`,
		userID.String()).Scan(&uid, &p.DisplayName, &p.LanguagePreference, &p.ThemePreference,
		&p.ConsentGiven, &consentDate, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.UserID, err = uuid.Parse(uid); err != nil {
		return nil, fmt.Errorf("parse user_id: %w", err)
	}
	if consentDate.Valid {
		t, err := db.ParseSQLiteTime(consentDate.String)
		if err != nil {
			return nil, err
		}
		p.ConsentDate = &t
	}
	if p.CreatedAt, err = db.ParseSQLiteTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = db.ParseSQLiteTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoSQLite) Upsert(ctx context.Context, p *Profile) error {
	var consentDate sql.NullString
	if p.ConsentDate != nil {
		consentDate = sql.NullString{String: db.FormatSQLiteTime(*p.ConsentDate), Valid: true}
	}
	now := db.FormatSQLiteTime(time.Now())

	var createdAt, updatedAt string
	err := sqliteConn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO profiles (user_id, display_name, language_preference, theme_preference, consent_given,
			consent_date, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = excluded.display_name,
			language_preference = excluded.language_preference,
			theme_preference = excluded.theme_preference,
			consent_given = excluded.consent_given,
			consent_date = excluded.consent_date,
			updated_at = excluded.updated_at
		RETURNING created_at, updated_at`,
		p.UserID.String(), p.DisplayName, string(p.LanguagePreference), p.ThemePreference, p.ConsentGiven,
		consentDate, now, now,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return err
	}
	if p.CreatedAt, err = db.ParseSQLiteTime(createdAt); err != nil {
		return err
	}
	p.UpdatedAt, err = db.ParseSQLiteTime(updatedAt)
	return err
}
