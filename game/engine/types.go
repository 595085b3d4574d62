package engine

import "fmt"

// Cell represents the state of a single board cell
type Cell int

const (
	Illegal Cell = iota
	Empty
	Full
)

const (
	// Validation constants
	MinBoardSize        = 7
	MaxBoardSize        = 51
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256

	// cornerBlock is the side of each square cut out of the board corners
	cornerBlock = 2
)

// cellSymbols maps each cell state to its display symbol
var cellSymbols = map[Cell]string{
	Illegal: "I",
	Empty:   "E",
	Full:    "F",
}

// Symbol returns the single-letter display symbol for the cell
func (c Cell) Symbol() string {
	if s, ok := cellSymbols[c]; ok {
		return s
	}
	return "?"
}

func (c Cell) String() string {
	switch c {
	case Illegal:
		return "illegal"
	case Empty:
		return "empty"
	case Full:
		return "full"
	}
	return fmt.Sprintf("Cell(%d)", int(c))
}

// MarshalText encodes the cell as its display symbol
func (c Cell) MarshalText() ([]byte, error) {
	s, ok := cellSymbols[c]
	if !ok {
		return nil, fmt.Errorf("unknown cell state %d", int(c))
	}
	return []byte(s), nil
}

// UnmarshalText decodes a display symbol into a cell
func (c *Cell) UnmarshalText(text []byte) error {
	cell, err := ParseCell(string(text))
	if err != nil {
		return err
	}
	*c = cell
	return nil
}

// ParseCell converts a display symbol back into a cell state
func ParseCell(symbol string) (Cell, error) {
	for cell, s := range cellSymbols {
		if s == symbol {
			return cell, nil
		}
	}
	return Illegal, fmt.Errorf("unknown cell symbol %q", symbol)
}

// Position represents row,col coordinates
type Position struct {
	Row int `json:"row" mapstructure:"row"`
	Col int `json:"col" mapstructure:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Move is a jump from one cell to another
type Move struct {
	From Position `json:"from" mapstructure:"from"`
	To   Position `json:"to" mapstructure:"to"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s->%s", m.From, m.To)
}

// offset is a (column, row) displacement
type offset struct {
	dCol, dRow int
}

// jumpNeighbours maps each legal jump displacement to the offset of the jumped
// cell, measured from the destination back toward the source.
var jumpNeighbours = map[offset]offset{
	{-2, 0}: {-1, 0},
	{0, -2}: {0, -1},
	{2, 0}:  {1, 0},
	{0, 2}:  {0, 1},
}

// directions are the four orthogonal unit steps: up, down, left, right
var directions = [4]offset{
	{0, -1},
	{0, 1},
	{-1, 0},
	{1, 0},
}

// GameState represents a snapshot of a game in progress
type GameState struct {
	Size           int                `json:"size"`
	Board          [][]Cell           `json:"board"`
	PiecesLeft     int                `json:"pieces_left"`
	LegalMoveCount int                `json:"legal_move_count"`
	Stalled        bool               `json:"stalled"`
	Win            bool               `json:"win"`
	GameOver       bool               `json:"game_over"`
	Message        string             `json:"message"`
	ConfigName     string             `json:"config_name"`
	MoveHistory    []MoveHistoryEntry `json:"move_history"`
	TotalMoves     int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. MoveHistory stays
	// cumulative across resets.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// MoveHistoryEntry represents a single attempted move in the game history
type MoveHistoryEntry struct {
	MoveNumber  int      `json:"move_number"`
	From        Position `json:"from"`
	To          Position `json:"to"`
	Jumped      Position `json:"jumped"`
	Success     bool     `json:"success"`
	FailureCode string   `json:"failure_code,omitempty"`
	PiecesLeft  int      `json:"pieces_left"`
	Timestamp   int64    `json:"timestamp"`
}
