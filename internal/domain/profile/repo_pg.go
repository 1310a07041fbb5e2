package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindwell/mindwell/internal/platform/db"
)

type queryable interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func pgConn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const profileCols = `user_id, display_name, language_preference, theme_preference,
	consent_given, consent_date, created_at, updated_at`

func (r *repoPG) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	err := pgConn(ctx, r.pool).QueryRow(ctx, `SELECT `+profileCols+` FROM profiles WHERE user_id = $1`, userID).Scan(
		&p.UserID, &p.DisplayName, &p.LanguagePreference, &p.ThemePreference,
		&p.ConsentGiven, &p.ConsentDate, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Upsert(ctx context.Context, p *Profile) error {
	return pgConn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO profiles (user_id, display_name, language_preference, theme_preference, consent_given, consent_date)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			language_preference = EXCLUDED.language_preference,
			theme_preference = EXCLUDED.theme_preference,
			consent_given = EXCLUDED.consent_given,
			consent_date = EXCLUDED.consent_date,
			updated_at = NOW()
		RETURNING created_at, updated_at`,
		p.UserID, p.DisplayName, p.LanguagePreference, p.ThemePreference, p.ConsentGiven, p.ConsentDate,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}
