package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrSourceNotFull        = errors.New("source not full")
	ErrDestinationNotEmpty  = errors.New("destination not empty")
	ErrIllegalMove          = errors.New("illegal move")
)

// MoveError describes a rejected move. Kind is one of ErrSourceNotFull,
// ErrDestinationNotEmpty or ErrIllegalMove.
type MoveError struct {
	Kind   error
	From   Position
	To     Position
	Reason string
}

func (e *MoveError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %s", e.Kind, Move{From: e.From, To: e.To})
	}
	return fmt.Sprintf("%v, %s: %s", e.Kind, e.Reason, Move{From: e.From, To: e.To})
}

func (e *MoveError) Unwrap() error {
	return e.Kind
}

// FailureCode maps an engine error to a stable machine-friendly code.
// It returns an empty string for nil and "unknown" for foreign errors.
func FailureCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidConfiguration):
		return "invalid_configuration"
	case errors.Is(err, ErrSourceNotFull):
		return "source_not_full"
	case errors.Is(err, ErrDestinationNotEmpty):
		return "destination_not_empty"
	case errors.Is(err, ErrIllegalMove):
		return "illegal_move"
	}
	return "unknown"
}
