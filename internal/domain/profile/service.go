package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mindwell/mindwell/internal/domain/instrument"
	"github.com/mindwell/mindwell/internal/platform/db"
)

type Service struct {
	repo Repository
	tx   db.Transactor
	now  func() time.Time
}

func NewService(repo Repository, tx db.Transactor) *Service {
	if tx == nil {
		tx = db.NoTx{}
	}
	return &Service{repo: repo, tx: tx, now: time.Now}
}

// Get returns the user's profile, creating the default one on first access.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user_id is required")
	}
	var p *Profile
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.getOrCreate(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) getOrCreate(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	p = defaultProfile(userID)
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// Update changes the display name and preferences. Consent fields are never
// touched here.
func (s *Service) Update(ctx context.Context, p *Profile) (*Profile, error) {
	if p.UserID == uuid.Nil {
		return nil, fmt.Errorf("user_id is required")
	}
	name := strings.TrimSpace(p.DisplayName)
	if utf8.RuneCountInString(name) > MaxDisplayNameLength {
		return nil, fmt.Errorf("%w: display_name must be at most %d characters", ErrInvalidProfile, MaxDisplayNameLength)
	}
	if _, ok := instrument.ParseLocale(string(p.LanguagePreference)); !ok {
		return nil, fmt.Errorf("%w: language_preference must be en or ms", ErrInvalidProfile)
	}
	if p.ThemePreference != ThemeLight && p.ThemePreference != ThemeDark {
		return nil, fmt.Errorf("%w: theme_preference must be light or dark", ErrInvalidProfile)
	}

	var out *Profile
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		cur, err := s.getOrCreate(ctx, p.UserID)
		if err != nil {
			return err
		}
		cur.DisplayName = name
		cur.LanguagePreference = p.LanguagePreference
		cur.ThemePreference = p.ThemePreference
		if err := s.repo.Upsert(ctx, cur); err != nil {
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GiveConsent records consent. Repeated calls keep the first consent date.
func (s *Service) GiveConsent(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user_id is required")
	}
	var out *Profile
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		cur, err := s.getOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		if cur.ConsentGiven && cur.ConsentDate != nil {
			out = cur
			return nil
		}
		now := s.now().UTC()
		cur.ConsentGiven = true
		cur.ConsentDate = &now
		if err := s.repo.Upsert(ctx, cur); err != nil {
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HasConsented reports whether the user has a profile with consent given.
// A missing profile counts as no consent.
func (s *Service) HasConsented(ctx context.Context, userID uuid.UUID) (bool, error) {
	p, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.ConsentGiven, nil
}
