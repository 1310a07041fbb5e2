package middleware

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

// LocaleKey is the echo context key holding the negotiated language code.
const LocaleKey = "locale"

// Locale resolves the response language from ?lang=, then Accept-Language,
// falling back to supported[0]. Codes are bare base languages ("en", "ms").
// The chosen code is stored as a string under LocaleKey.
func Locale(supported ...string) echo.MiddlewareFunc {
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tags = append(tags, language.Make(s))
	}
	matcher := language.NewMatcher(tags)
	def := ""
	if len(supported) > 0 {
		def = supported[0]
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(LocaleKey, negotiate(matcher, supported, def, c.QueryParam("lang"), c.Request().Header.Get("Accept-Language")))
			return next(c)
		}
	}
}

func negotiate(matcher language.Matcher, supported []string, def, query, header string) string {
	for _, s := range supported {
		if query == s {
			return s
		}
	}
	if header == "" {
		return def
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return def
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return def
	}
	return supported[idx]
}
