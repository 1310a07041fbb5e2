package instrument

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	defaultLocale Locale
}

func NewHandler(defaultLocale Locale) *Handler {
	return &Handler{defaultLocale: defaultLocale}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/instruments", h.ListInstruments)
	api.GET("/instruments/:id", h.GetInstrument)
	api.POST("/instruments/:id/score", h.ScorePreview)
}

// ScoringError maps scoring failures to HTTP errors. A score outside every
// range is a catalog fault, so it is a 500.
func ScoringError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrUnknownInstrument):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidResponseSet), errors.Is(err, ErrInvalidOptionValue):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "scoring failed").SetInternal(err)
	}
}

// LocaleOf returns the locale chosen by the locale middleware, or fallback.
func LocaleOf(c echo.Context, fallback Locale) Locale {
	code, _ := c.Get("locale").(string)
	if l, ok := ParseLocale(code); ok {
		return l
	}
	return fallback
}

type instrumentSummary struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	QuestionCount int         `json:"question_count"`
	ScoringType   ScoringType `json:"scoring_type"`
}

type optionView struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type questionView struct {
	Index      int          `json:"index"`
	Text       string       `json:"text"`
	Options    []optionView `json:"options"`
	CrisisFlag bool         `json:"crisis_flag,omitempty"`
}

type rangeView struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Level    string `json:"level"`
	Color    string `json:"color"`
	Feedback string `json:"feedback"`
}

// LocalizedInstrument is an instrument rendered in a single language.
type LocalizedInstrument struct {
	ID             string         `json:"id"`
	Locale         Locale         `json:"locale"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Instruction    string         `json:"instruction"`
	ScoringType    ScoringType    `json:"scoring_type"`
	Questions      []questionView `json:"questions"`
	SeverityRanges []rangeView    `json:"severity_ranges,omitempty"`
}

// Localize renders the instrument in one language.
func (inst *Instrument) Localize(l Locale) LocalizedInstrument {
	v := LocalizedInstrument{
		ID:          inst.ID,
		Locale:      l,
		Name:        inst.Name.In(l),
		Description: inst.Description.In(l),
		Instruction: inst.Instruction.In(l),
		ScoringType: inst.ScoringType,
		Questions:   make([]questionView, len(inst.Questions)),
	}
	for i, q := range inst.Questions {
		opts := make([]optionView, len(q.Options))
		for j, o := range q.Options {
			opts[j] = optionView{Value: o.Value, Label: o.Label.In(l)}
		}
		v.Questions[i] = questionView{Index: q.Index, Text: q.Text.In(l), Options: opts, CrisisFlag: q.CrisisFlag}
	}
	for _, r := range inst.SeverityRanges {
		v.SeverityRanges = append(v.SeverityRanges, rangeView{
			Min: r.Min, Max: r.Max, Level: r.Level, Color: r.Color, Feedback: r.Feedback.In(l),
		})
	}
	return v
}

type scoreRequest struct {
	Responses []int `json:"responses"`
}

type scoreResponse struct {
	*ScoringResult
	Message string `json:"message"`
}

func (h *Handler) ListInstruments(c echo.Context) error {
	l := LocaleOf(c, h.defaultLocale)
	all := All()
	out := make([]instrumentSummary, len(all))
	for i, inst := range all {
		out[i] = instrumentSummary{
			ID:            inst.ID,
			Name:          inst.Name.In(l),
			Description:   inst.Description.In(l),
			QuestionCount: len(inst.Questions),
			ScoringType:   inst.ScoringType,
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": out, "locale": l})
}

func (h *Handler) GetInstrument(c echo.Context) error {
	inst, err := Lookup(c.Param("id"))
	if err != nil {
		return ScoringError(err)
	}
	return c.JSON(http.StatusOK, inst.Localize(LocaleOf(c, h.defaultLocale)))
}

// ScorePreview scores responses without storing anything.
func (h *Handler) ScorePreview(c echo.Context) error {
	var req scoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := Score(c.Param("id"), req.Responses)
	if err != nil {
		return ScoringError(err)
	}
	return c.JSON(http.StatusOK, scoreResponse{
		ScoringResult: res,
		Message:       res.Feedback.In(LocaleOf(c, h.defaultLocale)),
	})
}
