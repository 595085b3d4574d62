package engine

import (
	"fmt"
	"strings"
)

// Board is a square cross-shaped peg solitaire grid stored row-major.
// It is not safe for concurrent use.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard builds the initial layout for a board of the given size: every
// playable cell holds a peg except the center, and the four 2x2 corner blocks
// are cut out.
func NewBoard(size int) (*Board, error) {
	if err := ValidateBoardSize(size); err != nil {
		return nil, err
	}

	b := &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
	for i := range b.cells {
		b.cells[i] = Full
	}
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if isCorner(size, row, col) {
				b.set(row, col, Illegal)
			}
		}
	}

	center := size / 2
	b.set(center, center, Empty)

	return b, nil
}

// ValidateBoardSize reports whether size can be used to build a board
func ValidateBoardSize(size int) error {
	if size < MinBoardSize || size%2 == 0 {
		return fmt.Errorf("%w: size must be bigger than or equal to %d and odd, got %d",
			ErrInvalidConfiguration, MinBoardSize, size)
	}
	return nil
}

// isCorner reports whether (row, col) lies in one of the cut-out corner blocks
func isCorner(size, row, col int) bool {
	nearEdge := func(i int) bool {
		return i < cornerBlock || i >= size-cornerBlock
	}
	return nearEdge(row) && nearEdge(col)
}

// ParseBoard builds a board from rows of cell symbols ("I", "E", "F").
// The rows must describe a valid size whose illegal cells are exactly the
// corner cutout.
func ParseBoard(rows []string) (*Board, error) {
	size := len(rows)
	if err := ValidateBoardSize(size); err != nil {
		return nil, err
	}

	b := &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
	for row, line := range rows {
		if len(line) != size {
			return nil, fmt.Errorf("%w: row %d must have %d cells, got %d",
				ErrInvalidConfiguration, row, size, len(line))
		}
		for col, r := range line {
			cell, err := ParseCell(string(r))
			if err != nil {
				return nil, fmt.Errorf("%w: row %d col %d: %v", ErrInvalidConfiguration, row, col, err)
			}
			if (cell == Illegal) != isCorner(size, row, col) {
				return nil, fmt.Errorf("%w: cell (%d,%d) breaks the cross layout",
					ErrInvalidConfiguration, row, col)
			}
			b.set(row, col, cell)
		}
	}

	return b, nil
}

// Size returns the side length of the board
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether (row, col) is inside the grid
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// At returns the cell at (row, col). The second result is false when the
// coordinates are outside the grid.
func (b *Board) At(row, col int) (Cell, bool) {
	if !b.InBounds(row, col) {
		return Illegal, false
	}
	return b.cells[row*b.size+col], true
}

func (b *Board) get(row, col int) Cell {
	return b.cells[row*b.size+col]
}

func (b *Board) set(row, col int, cell Cell) {
	b.cells[row*b.size+col] = cell
}

// Rows returns a copy of the grid as nested rows
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.size)
	for row := range rows {
		rows[row] = make([]Cell, b.size)
		copy(rows[row], b.cells[row*b.size:(row+1)*b.size])
	}
	return rows
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// CountCells counts the cells holding the given state
func (b *Board) CountCells(cell Cell) int {
	count := 0
	for _, c := range b.cells {
		if c == cell {
			count++
		}
	}
	return count
}

// PiecesLeft returns the number of pegs on the board
func (b *Board) PiecesLeft() int {
	return b.CountCells(Full)
}

// Win reports whether exactly one peg remains
func (b *Board) Win() bool {
	return b.PiecesLeft() == 1
}

// String renders the board as lines of cell symbols
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < b.size; col++ {
			sb.WriteString(b.get(row, col).Symbol())
		}
	}
	return sb.String()
}
