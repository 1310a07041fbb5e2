package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("profile not found")
	ErrInvalidProfile = errors.New("invalid profile")
)

// Repository stores one profile per user. Get returns ErrNotFound when the
// user has none; Upsert fills CreatedAt and UpdatedAt.
type Repository interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}
