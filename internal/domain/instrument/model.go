package instrument

// Instrument identifiers. The set is closed; Lookup rejects anything else.
const (
	PHQ9   = "PHQ9"
	GAD7   = "GAD7"
	DASS21 = "DASS21"
	WHO5   = "WHO5"
	K10    = "K10"
)

// Unanswered marks a position in a response set that has no selection yet.
const Unanswered = -1

// Locale selects one side of a LocalizedText.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleMS Locale = "ms"
)

// ParseLocale returns the locale for s and whether it is supported.
func ParseLocale(s string) (Locale, bool) {
	switch Locale(s) {
	case LocaleEN, LocaleMS:
		return Locale(s), true
	}
	return LocaleEN, false
}

// SupportedLocales lists every locale as a language code, def first.
func SupportedLocales(def Locale) []string {
	if def == LocaleMS {
		return []string{string(LocaleMS), string(LocaleEN)}
	}
	return []string{string(LocaleEN), string(LocaleMS)}
}

// LocalizedText carries the English and Malay rendering of a string.
// EN is the canonical text.
type LocalizedText struct {
	EN string `json:"en" yaml:"en"`
	MS string `json:"ms" yaml:"ms"`
}

// In returns the text for l, falling back to English.
func (t LocalizedText) In(l Locale) string {
	if l == LocaleMS && t.MS != "" {
		return t.MS
	}
	return t.EN
}

type ScoringType string

const (
	ScoringSum      ScoringType = "sum"
	ScoringSubscale ScoringType = "subscale"
)

// Severity labels produced by the catalog ranges and the DASS-21 classifier.
const (
	SeverityMinimal          = "minimal"
	SeverityNormal           = "normal"
	SeverityMild             = "mild"
	SeverityModerate         = "moderate"
	SeverityModeratelySevere = "moderatelySevere"
	SeveritySevere           = "severe"
	SeverityLow              = "low"
	SeverityPoor             = "poor"
	SeverityGood             = "good"
)

// Color hints, one per severity tier.
const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorOrange = "orange"
	ColorRed    = "red"
)

type Option struct {
	Value int           `json:"value" yaml:"value"`
	Label LocalizedText `json:"label" yaml:"label"`
}

// Question is a single item of an instrument. Responses are matched to
// questions by Index, never by any other key.
type Question struct {
	Index      int           `json:"index" yaml:"index"`
	Text       LocalizedText `json:"text" yaml:"text"`
	Options    []Option      `json:"options" yaml:"options"`
	CrisisFlag bool          `json:"crisis_flag,omitempty" yaml:"crisis_flag,omitempty"`
}

// HasOption reports whether v is one of the question's option values.
func (q Question) HasOption(v int) bool {
	for _, o := range q.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

func (q Question) minValue() int {
	m := q.Options[0].Value
	for _, o := range q.Options[1:] {
		if o.Value < m {
			m = o.Value
		}
	}
	return m
}

func (q Question) maxValue() int {
	m := q.Options[0].Value
	for _, o := range q.Options[1:] {
		if o.Value > m {
			m = o.Value
		}
	}
	return m
}

type SeverityRange struct {
	Min      int           `json:"min" yaml:"min"`
	Max      int           `json:"max" yaml:"max"`
	Level    string        `json:"level" yaml:"level"`
	Color    string        `json:"color" yaml:"color"`
	Feedback LocalizedText `json:"feedback" yaml:"feedback"`
}

// Contains reports whether score falls inside [Min, Max].
func (r SeverityRange) Contains(score int) bool {
	return score >= r.Min && score <= r.Max
}

// Instrument is a validated questionnaire definition. Values returned by the
// catalog are shared and must not be modified.
type Instrument struct {
	ID             string          `json:"id" yaml:"id"`
	Name           LocalizedText   `json:"name" yaml:"name"`
	Description    LocalizedText   `json:"description" yaml:"description"`
	Instruction    LocalizedText   `json:"instruction" yaml:"instruction"`
	Questions      []Question      `json:"questions" yaml:"questions"`
	ScoringType    ScoringType     `json:"scoring_type" yaml:"scoring_type"`
	SeverityRanges []SeverityRange `json:"severity_ranges" yaml:"severity_ranges"`
}

// MinScore is the lowest total a complete response set can reach.
func (inst *Instrument) MinScore() int {
	total := 0
	for _, q := range inst.Questions {
		total += q.minValue()
	}
	return total
}

// MaxScore is the highest total a complete response set can reach.
func (inst *Instrument) MaxScore() int {
	total := 0
	for _, q := range inst.Questions {
		total += q.maxValue()
	}
	return total
}

// SubscaleScores holds the DASS-21 components. Scores are already doubled to
// the DASS-42 scale.
type SubscaleScores struct {
	Depression         int    `json:"depression"`
	Anxiety            int    `json:"anxiety"`
	Stress             int    `json:"stress"`
	DepressionSeverity string `json:"depression_severity"`
	AnxietySeverity    string `json:"anxiety_severity"`
	StressSeverity     string `json:"stress_severity"`
}

// ScoringResult is the immutable outcome of scoring one response set.
type ScoringResult struct {
	TotalScore     int             `json:"total_score"`
	SeverityLevel  string          `json:"severity_level"`
	Color          string          `json:"color"`
	Feedback       LocalizedText   `json:"feedback"`
	SubscaleScores *SubscaleScores `json:"subscale_scores,omitempty"`
	CrisisFlagged  bool            `json:"crisis_flagged"`
	TriggerReason  string          `json:"trigger_reason,omitempty"`
}
