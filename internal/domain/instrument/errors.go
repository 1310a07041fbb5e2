package instrument

import "errors"

var (
	// ErrUnknownInstrument is returned for ids outside the catalog.
	ErrUnknownInstrument = errors.New("unknown instrument")
	// ErrInvalidResponseSet is returned when the response count does not
	// match the instrument's question count.
	ErrInvalidResponseSet = errors.New("invalid response set")
	// ErrInvalidOptionValue is returned when a response is not one of the
	// option values of its question, including the Unanswered sentinel.
	ErrInvalidOptionValue = errors.New("invalid option value")
	// ErrScoreOutOfRange means no severity range matched a computed total.
	// It signals a broken catalog, not bad input.
	ErrScoreOutOfRange = errors.New("score out of range")
)
