package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCellSymbols(t *testing.T) {
	tests := []struct {
		cell   Cell
		symbol string
	}{
		{Illegal, "I"},
		{Empty, "E"},
		{Full, "F"},
	}

	for _, test := range tests {
		if test.cell.Symbol() != test.symbol {
			t.Errorf("Expected %s, got %s", test.symbol, test.cell.Symbol())
		}
		parsed, err := ParseCell(test.symbol)
		if err != nil || parsed != test.cell {
			t.Errorf("ParseCell(%q) = %v, %v", test.symbol, parsed, err)
		}
	}

	if _, err := ParseCell("X"); err == nil {
		t.Error("Expected error for unknown symbol")
	}
	if Cell(9).Symbol() != "?" {
		t.Errorf("Expected placeholder symbol for unknown cell, got %s", Cell(9).Symbol())
	}
}

func TestGameStateBoardJSON(t *testing.T) {
	state := NewEngineWithDefaults().GetState()

	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("Failed to marshal state: %v", err)
	}

	var raw struct {
		Board [][]string `json:"board"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to unmarshal raw board: %v", err)
	}
	if got := raw.Board[3][3]; got != "E" {
		t.Errorf("Expected center symbol E, got %s", got)
	}
	if got := raw.Board[0][0]; got != "I" {
		t.Errorf("Expected corner symbol I, got %s", got)
	}

	var decoded GameState
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal state: %v", err)
	}
	if decoded.Board[3][2] != Full {
		t.Errorf("Expected Full at (3,2), got %v", decoded.Board[3][2])
	}
}

func TestCellMarshalUnknown(t *testing.T) {
	if _, err := json.Marshal(Cell(7)); err == nil {
		t.Error("Expected error marshaling unknown cell")
	}
}

func TestFailureCode(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{nil, ""},
		{ErrInvalidConfiguration, "invalid_configuration"},
		{&MoveError{Kind: ErrSourceNotFull}, "source_not_full"},
		{&MoveError{Kind: ErrDestinationNotEmpty}, "destination_not_empty"},
		{&MoveError{Kind: ErrIllegalMove, Reason: "jumped cell is empty"}, "illegal_move"},
		{errors.New("boom"), "unknown"},
	}

	for _, test := range tests {
		if got := FailureCode(test.err); got != test.code {
			t.Errorf("FailureCode(%v) = %q, want %q", test.err, got, test.code)
		}
	}
}

func TestMoveErrorMessage(t *testing.T) {
	err := &MoveError{
		Kind:   ErrIllegalMove,
		From:   Position{Row: 3, Col: 3},
		To:     Position{Row: 3, Col: 1},
		Reason: "jumped cell is empty",
	}
	want := "illegal move, jumped cell is empty: (3,3)->(3,1)"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}
