package assessment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mindwell/mindwell/internal/domain/instrument"
	"github.com/mindwell/mindwell/internal/platform/auth"
	"github.com/mindwell/mindwell/pkg/pagination"
)

type Handler struct {
	svc           *Service
	defaultLocale instrument.Locale
}

func NewHandler(svc *Service, defaultLocale instrument.Locale) *Handler {
	return &Handler{svc: svc, defaultLocale: defaultLocale}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/assessments", h.SubmitAssessment)
	api.GET("/assessments", h.ListAssessments)
	api.GET("/assessments/:id", h.GetAssessment)
	api.POST("/assessments/:id/crisis-acknowledgment", h.AcknowledgeCrisis)

	api.GET("/dashboard", h.GetDashboard)
	api.GET("/dashboard/risk", h.GetRisk)

	api.GET("/crisis/resources", h.ListCrisisResources)
	api.GET("/crisis/logs", h.ListCrisisLogs)
}

type submitRequest struct {
	InstrumentID string `json:"instrument_id"`
	Responses    []int  `json:"responses"`
}

type submitResponse struct {
	*Submission
	Message string `json:"message"`
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrConsentRequired):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotCrisisFlagged):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, instrument.ErrUnknownInstrument),
		errors.Is(err, instrument.ErrScoreOutOfRange),
		IsScoringInputError(err):
		return instrument.ScoringError(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
	}
}

func (h *Handler) SubmitAssessment(c echo.Context) error {
	userID, err := auth.RequireUser(c)
	if err != nil {
		return err
	}
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.InstrumentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "instrument_id is required")
	}
	sub, err := h.svc.Submit(c.Request().Context(), userID, req.InstrumentID, req.Responses)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, submitResponse{
		Submission: sub,
		Message:    sub.Record.Feedback.In(instrument.LocaleOf(c, h.defaultLocale)),
	})
}

func (h *Handler) GetAssessment(c echo.Context) error {
	userID, err := auth.RequireUser(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rec, err := h.svc.Get(c.Request().Context(), userID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ListAssessments(c echo.Context) error {
	userID, err := auth.RequireUser(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	if items == nil {
		items = []*AssessmentRecord{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset).WithLinks(c.Request().URL.Path))
}

func (h *Handler) AcknowledgeCrisis(c echo.Context) error {
	userID, err := auth.RequireUser(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	entry, err := h.svc.AcknowledgeCrisis(c.Request().Context(), userID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *Handler) GetDashboard(c echo.Context) error {
	userID, err := auth.RequireUser(c)
	if err != nil {
		return err
	}
	d, err := h.svc.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) GetRisk(c echo.Context) error {
	userID, err := auth.RequireUser(c)
	if err != nil {
		return err
	}
	risk, err := h.svc.CurrentRisk(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, risk)
}

type crisisResourceView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
}

func (h *Handler) ListCrisisResources(c echo.Context) error {
	l := instrument.LocaleOf(c, h.defaultLocale)
	all := h.svc.CrisisResources()
	out := make([]crisisResourceView, len(all))
	for i, r := range all {
		out[i] = crisisResourceView{Name: r.Name.In(l), Description: r.Description.In(l), Phone: r.Phone}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": out})
}

func (h *Handler) ListCrisisLogs(c echo.Context) error {
	userID, err := auth.RequireUser(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListCrisisLogs(c.Request().Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	if items == nil {
		items = []*CrisisLog{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset).WithLinks(c.Request().URL.Path))
}
