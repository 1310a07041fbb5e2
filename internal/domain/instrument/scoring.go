package instrument

import "fmt"

// Score looks up the instrument and scores a complete response set.
// It returns ErrUnknownInstrument, ErrInvalidResponseSet,
// ErrInvalidOptionValue or ErrScoreOutOfRange (all wrapped); on error no
// result is returned.
func Score(id string, responses []int) (*ScoringResult, error) {
	inst, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return inst.Score(responses)
}

// Score scores responses against the instrument. It is pure: identical
// input yields an identical result.
func (inst *Instrument) Score(responses []int) (*ScoringResult, error) {
	if err := inst.checkResponses(responses); err != nil {
		return nil, err
	}

	var (
		res *ScoringResult
		err error
	)
	switch inst.ScoringType {
	case ScoringSubscale:
		res = scoreDASS21(responses)
	default:
		res, err = inst.scoreSum(responses)
		if err != nil {
			return nil, err
		}
	}

	res.CrisisFlagged, res.TriggerReason = inst.crisisScan(responses)
	return res, nil
}

func (inst *Instrument) checkResponses(responses []int) error {
	if len(responses) != len(inst.Questions) {
		return fmt.Errorf("%w: %s expects %d responses, got %d",
			ErrInvalidResponseSet, inst.ID, len(inst.Questions), len(responses))
	}
	for i, q := range inst.Questions {
		if !q.HasOption(responses[i]) {
			return fmt.Errorf("%w: %s question %d does not accept %d",
				ErrInvalidOptionValue, inst.ID, i, responses[i])
		}
	}
	return nil
}

// crisisScan reports whether any crisis-flagged question got a value above
// zero. The first such question, in question order, supplies the reason.
func (inst *Instrument) crisisScan(responses []int) (bool, string) {
	for i, q := range inst.Questions {
		if q.CrisisFlag && responses[i] > 0 {
			return true, q.Text.EN
		}
	}
	return false, ""
}

func (inst *Instrument) scoreSum(responses []int) (*ScoringResult, error) {
	total := 0
	for _, v := range responses {
		total += v
	}
	for _, r := range inst.SeverityRanges {
		if r.Contains(total) {
			return &ScoringResult{
				TotalScore:    total,
				SeverityLevel: r.Level,
				Color:         r.Color,
				Feedback:      r.Feedback,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s total %d", ErrScoreOutOfRange, inst.ID, total)
}
