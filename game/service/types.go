package service

import (
	"time"

	"github.com/wricardo/pegsolitaire/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GameState      *engine.GameState   `json:"game_state"`
	BoardConfig    *engine.BoardConfig `json:"board_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success     bool              `json:"success"`
	FailureCode string            `json:"failure_code,omitempty"` // source_not_full|destination_not_empty|illegal_move
	GameState   *engine.GameState `json:"game_state"`
	Message     string            `json:"message"`
	Events      []GameEvent       `json:"events,omitempty"`
	Step        *StepInfo         `json:"step,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // source_not_full|destination_not_empty|illegal_move|stalled|win
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	StartPieces int `json:"start_pieces"`
	EndPieces   int `json:"end_pieces"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	GameOver bool   `json:"game_over"`
	Win      bool   `json:"win"`
	Message  string `json:"message,omitempty"`
}

// StepInfo is a compact record for each move attempted in a call
type StepInfo struct {
	Idx          int             `json:"idx"`
	From         engine.Position `json:"from"`
	To           engine.Position `json:"to"`
	Jumped       engine.Position `json:"jumped"`
	PiecesBefore int             `json:"pieces_before"`
	PiecesAfter  int             `json:"pieces_after"`
	Success      bool            `json:"success"`
	FailureCode  string          `json:"failure_code,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string       `json:"type"` // "reset", "move", "win", "stalled"
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Move      *engine.Move `json:"move,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a board preset
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Size        int    `json:"size"`
	Pegs        int    `json:"pegs"`
}
