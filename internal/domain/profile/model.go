package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/mindwell/internal/domain/instrument"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// MaxDisplayNameLength is counted in runes.
const MaxDisplayNameLength = 100

// Profile maps to the profiles table. It is keyed by the identity
// provider's user id.
type Profile struct {
	UserID             uuid.UUID         `db:"user_id" json:"user_id"`
	DisplayName        string            `db:"display_name" json:"display_name"`
	LanguagePreference instrument.Locale `db:"language_preference" json:"language_preference"`
	ThemePreference    string            `db:"theme_preference" json:"theme_preference"`
	ConsentGiven       bool              `db:"consent_given" json:"consent_given"`
	ConsentDate        *time.Time        `db:"consent_date" json:"consent_date,omitempty"`
	CreatedAt          time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time         `db:"updated_at" json:"updated_at"`
}

func defaultProfile(userID uuid.UUID) *Profile {
	return &Profile{
		UserID:             userID,
		LanguagePreference: instrument.LocaleEN,
		ThemePreference:    ThemeLight,
	}
}
