package profile

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindwell/mindwell/internal/domain/instrument"
	"github.com/mindwell/mindwell/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/profile", h.GetProfile)
	api.PUT("/profile", h.UpdateProfile)
	api.POST("/profile/consent", h.GiveConsent)
}

type updateRequest struct {
	DisplayName        string            `json:"display_name"`
	LanguagePreference instrument.Locale `json:"language_preference"`
	ThemePreference    string            `json:"theme_preference"`
}

func (h *Handler) GetProfile(c echo.Context) error {
	userID, err := auth.RequireUser(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load profile").SetInternal(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, err := auth.RequireUser(c)
	if err != nil {
		return err
	}
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Update(c.Request().Context(), &Profile{
		UserID:             userID,
		DisplayName:        req.DisplayName,
		LanguagePreference: req.LanguagePreference,
		ThemePreference:    req.ThemePreference,
	})
	if errors.Is(err, ErrInvalidProfile) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "update profile").SetInternal(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GiveConsent(c echo.Context) error {
	userID, err := auth.RequireUser(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GiveConsent(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "record consent").SetInternal(err)
	}
	return c.JSON(http.StatusOK, p)
}
