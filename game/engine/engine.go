package engine

import (
	"errors"
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	Reset() *GameState
	IsGameOver() bool
	IsWin() bool
	IsStalled() bool
	PiecesLeft() int

	// Board access
	Board() *Board

	// Movement operations
	Move(move Move) error
	CanMove(move Move) error
	LegalMoves() []Move

	// Configuration
	GetConfig() *BoardConfig

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

var _ Engine = (*GameEngine)(nil)

// GameEngine implements the Engine interface on top of a Board
type GameEngine struct {
	board   *Board
	config  *BoardConfig
	message string

	moveHistory  []MoveHistoryEntry
	currentMoves []MoveHistoryEntry
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *BoardConfig) (*GameEngine, error) {
	if err := ValidateBoardConfig(config); err != nil {
		return nil, err
	}

	board, err := NewBoard(config.Size)
	if err != nil {
		return nil, err
	}

	return &GameEngine{
		board:        board,
		config:       config,
		message:      config.Messages.Welcome,
		moveHistory:  []MoveHistoryEntry{},
		currentMoves: []MoveHistoryEntry{},
	}, nil
}

// NewEngineWithDefaults creates a new game engine on the classic 7x7 board
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultBoardConfig())
	if err != nil {
		panic(fmt.Sprintf("default board config is invalid: %v", err))
	}
	return engine
}

// Board returns a copy of the current board
func (e *GameEngine) Board() *Board {
	return e.board.Clone()
}

// GetState returns a snapshot of the current game
func (e *GameEngine) GetState() *GameState {
	stalled := e.board.Stalled()
	legal := e.board.LegalMoves()

	history := make([]MoveHistoryEntry, len(e.moveHistory))
	copy(history, e.moveHistory)
	current := make([]MoveHistoryEntry, len(e.currentMoves))
	copy(current, e.currentMoves)

	return &GameState{
		Size:              e.board.Size(),
		Board:             e.board.Rows(),
		PiecesLeft:        e.board.PiecesLeft(),
		LegalMoveCount:    len(legal),
		Stalled:           stalled,
		Win:               e.board.Win(),
		GameOver:          stalled,
		Message:           e.message,
		ConfigName:        e.config.Name,
		MoveHistory:       history,
		TotalMoves:        len(history),
		CurrentMoves:      current,
		CurrentMovesCount: len(current),
	}
}

// Reset rebuilds the initial board. The cumulative move history is kept,
// only the current segment is cleared.
func (e *GameEngine) Reset() *GameState {
	board, err := NewBoard(e.config.Size)
	if err != nil {
		// config was validated on construction
		panic(err)
	}
	e.board = board
	e.message = e.config.Messages.Welcome
	e.currentMoves = []MoveHistoryEntry{}
	return e.GetState()
}

// IsGameOver reports whether no move is left
func (e *GameEngine) IsGameOver() bool {
	return e.board.Stalled()
}

// IsWin reports whether a single peg remains
func (e *GameEngine) IsWin() bool {
	return e.board.Win()
}

// IsStalled reports whether no legal move exists
func (e *GameEngine) IsStalled() bool {
	return e.board.Stalled()
}

// PiecesLeft returns the number of pegs on the board
func (e *GameEngine) PiecesLeft() int {
	return e.board.PiecesLeft()
}

// Move applies a jump and records it in the history. Rejected moves are
// recorded as unsuccessful and leave the board unchanged.
func (e *GameEngine) Move(move Move) error {
	var jumped Position
	err := e.board.CanMove(move.From.Row, move.From.Col, move.To.Row, move.To.Col)
	if err == nil {
		jumped = Position{Row: (move.From.Row + move.To.Row) / 2, Col: (move.From.Col + move.To.Col) / 2}
		err = e.board.Move(move.From.Row, move.From.Col, move.To.Row, move.To.Col)
	}

	e.addMoveToHistory(move, jumped, err)
	e.message = e.messageFor(err)
	return err
}

// CanMove checks a move without applying it
func (e *GameEngine) CanMove(move Move) error {
	return e.board.CanMove(move.From.Row, move.From.Col, move.To.Row, move.To.Col)
}

// LegalMoves returns every legal jump on the current board
func (e *GameEngine) LegalMoves() []Move {
	return e.board.LegalMoves()
}

// GetConfig returns the board preset the engine was built from
func (e *GameEngine) GetConfig() *BoardConfig {
	return e.config
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.moveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.moveHistory) == 0 {
		return nil
	}
	return &e.moveHistory[len(e.moveHistory)-1]
}

func (e *GameEngine) messageFor(err error) string {
	msgs := e.config.Messages
	if err != nil {
		var moveErr *MoveError
		if msgs.Illegal != "" && errors.As(err, &moveErr) {
			return fmt.Sprintf("%s: %v", msgs.Illegal, err)
		}
		return err.Error()
	}

	switch {
	case e.board.Win():
		return msgs.Win
	case e.board.Stalled():
		return fmt.Sprintf(msgs.Stalled, e.board.PiecesLeft())
	case msgs.Moved != "":
		return fmt.Sprintf(msgs.Moved, e.board.PiecesLeft())
	}
	return ""
}

func (e *GameEngine) addMoveToHistory(move Move, jumped Position, err error) {
	entry := MoveHistoryEntry{
		MoveNumber:  len(e.moveHistory) + 1,
		From:        move.From,
		To:          move.To,
		Jumped:      jumped,
		Success:     err == nil,
		FailureCode: FailureCode(err),
		PiecesLeft:  e.board.PiecesLeft(),
		Timestamp:   time.Now().Unix(),
	}
	e.moveHistory = append(e.moveHistory, entry)
	e.currentMoves = append(e.currentMoves, entry)
}
