package instrument

import (
	"fmt"
	"sort"
)

// catalog is built once at package initialization. A definition that fails
// Validate panics here, so a broken table can never reach a scoring call.
var catalog = mustBuildCatalog(phq9(), gad7(), dass21(), who5(), k10())

type registry struct {
	ordered []*Instrument
	byID    map[string]*Instrument
}

func mustBuildCatalog(defs ...*Instrument) *registry {
	r := &registry{byID: make(map[string]*Instrument, len(defs))}
	for _, inst := range defs {
		if err := Validate(inst); err != nil {
			panic(fmt.Sprintf("instrument catalog: %v", err))
		}
		if _, dup := r.byID[inst.ID]; dup {
			panic(fmt.Sprintf("instrument catalog: duplicate id %s", inst.ID))
		}
		r.ordered = append(r.ordered, inst)
		r.byID[inst.ID] = inst
	}
	return r
}

// Lookup returns the instrument registered under id.
func Lookup(id string) (*Instrument, error) {
	inst, ok := catalog.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, id)
	}
	return inst, nil
}

// All returns every instrument in catalog order.
func All() []*Instrument {
	out := make([]*Instrument, len(catalog.ordered))
	copy(out, catalog.ordered)
	return out
}

// IDs returns the instrument ids in catalog order.
func IDs() []string {
	ids := make([]string, 0, len(catalog.ordered))
	for _, inst := range catalog.ordered {
		ids = append(ids, inst.ID)
	}
	return ids
}

// Validate checks the structural invariants of an instrument definition.
//
// Question indices must equal their position and every question needs a
// non-empty option set with unique values. Sum instruments must have
// severity ranges that cover [MinScore, MaxScore] exactly, with no gap and
// no overlap. Subscale instruments carry no ranges; their classification is
// hardcoded.
func Validate(inst *Instrument) error {
	if inst == nil {
		return fmt.Errorf("instrument is nil")
	}
	if inst.ID == "" {
		return fmt.Errorf("instrument id is required")
	}
	if len(inst.Questions) == 0 {
		return fmt.Errorf("%s: no questions", inst.ID)
	}
	for i, q := range inst.Questions {
		if q.Index != i {
			return fmt.Errorf("%s: question at position %d has index %d", inst.ID, i, q.Index)
		}
		if q.Text.EN == "" {
			return fmt.Errorf("%s: question %d has no canonical text", inst.ID, i)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("%s: question %d has no options", inst.ID, i)
		}
		seen := make(map[int]bool, len(q.Options))
		for _, o := range q.Options {
			if seen[o.Value] {
				return fmt.Errorf("%s: question %d repeats option value %d", inst.ID, i, o.Value)
			}
			if o.Value == Unanswered {
				return fmt.Errorf("%s: question %d uses the unanswered sentinel as an option", inst.ID, i)
			}
			seen[o.Value] = true
		}
	}

	switch inst.ScoringType {
	case ScoringSum:
		return validateRanges(inst)
	case ScoringSubscale:
		if inst.ID != DASS21 {
			return fmt.Errorf("%s: subscale scoring is only defined for %s", inst.ID, DASS21)
		}
		if len(inst.SeverityRanges) != 0 {
			return fmt.Errorf("%s: subscale instruments must not define severity ranges", inst.ID)
		}
		return validateSubscales(inst)
	default:
		return fmt.Errorf("%s: unknown scoring type %q", inst.ID, inst.ScoringType)
	}
}

func validateRanges(inst *Instrument) error {
	if len(inst.SeverityRanges) == 0 {
		return fmt.Errorf("%s: no severity ranges", inst.ID)
	}
	ranges := make([]SeverityRange, len(inst.SeverityRanges))
	copy(ranges, inst.SeverityRanges)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Min < ranges[j].Min })

	lo, hi := inst.MinScore(), inst.MaxScore()
	if ranges[0].Min != lo {
		return fmt.Errorf("%s: ranges start at %d, lowest achievable score is %d", inst.ID, ranges[0].Min, lo)
	}
	for i, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("%s: range %q has min %d > max %d", inst.ID, r.Level, r.Min, r.Max)
		}
		if r.Level == "" || r.Color == "" {
			return fmt.Errorf("%s: range [%d,%d] needs a level and a color", inst.ID, r.Min, r.Max)
		}
		if i == 0 {
			continue
		}
		prev := ranges[i-1]
		switch {
		case r.Min <= prev.Max:
			return fmt.Errorf("%s: ranges %q and %q overlap", inst.ID, prev.Level, r.Level)
		case r.Min > prev.Max+1:
			return fmt.Errorf("%s: gap between %d and %d", inst.ID, prev.Max, r.Min)
		}
	}
	if last := ranges[len(ranges)-1]; last.Max != hi {
		return fmt.Errorf("%s: ranges end at %d, highest achievable score is %d", inst.ID, last.Max, hi)
	}
	return nil
}
