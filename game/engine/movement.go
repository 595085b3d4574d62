package engine

// Move jumps the peg at (fromRow, fromCol) over its neighbour into the empty
// cell at (toRow, toCol), removing the jumped peg. The board is left
// untouched when the move is rejected.
func (b *Board) Move(fromRow, fromCol, toRow, toCol int) error {
	jumped, err := b.checkMove(fromRow, fromCol, toRow, toCol)
	if err != nil {
		return err
	}

	b.set(fromRow, fromCol, Empty)
	b.set(jumped.Row, jumped.Col, Empty)
	b.set(toRow, toCol, Full)
	return nil
}

// CanMove runs the same checks as Move without changing the board
func (b *Board) CanMove(fromRow, fromCol, toRow, toCol int) error {
	_, err := b.checkMove(fromRow, fromCol, toRow, toCol)
	return err
}

// checkMove validates a jump and returns the position of the jumped cell
func (b *Board) checkMove(fromRow, fromCol, toRow, toCol int) (Position, error) {
	from := Position{Row: fromRow, Col: fromCol}
	to := Position{Row: toRow, Col: toCol}
	reject := func(kind error, reason string) (Position, error) {
		return Position{}, &MoveError{Kind: kind, From: from, To: to, Reason: reason}
	}

	if !b.InBounds(fromRow, fromCol) || !b.InBounds(toRow, toCol) {
		return reject(ErrIllegalMove, "out of bounds")
	}
	if b.get(fromRow, fromCol) != Full {
		return reject(ErrSourceNotFull, "")
	}
	if b.get(toRow, toCol) != Empty {
		return reject(ErrDestinationNotEmpty, "")
	}

	neighbour, ok := jumpNeighbours[offset{dCol: toCol - fromCol, dRow: toRow - fromRow}]
	if !ok {
		return reject(ErrIllegalMove, "")
	}

	jumped := Position{Row: toRow - neighbour.dRow, Col: toCol - neighbour.dCol}
	if b.get(jumped.Row, jumped.Col) != Full {
		return reject(ErrIllegalMove, "jumped cell is empty")
	}

	return jumped, nil
}

// Stalled reports whether no legal move is left on the board
func (b *Board) Stalled() bool {
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.get(row, col) != Full {
				continue
			}
			for _, d := range directions {
				if b.canJump(row, col, d) {
					return false
				}
			}
		}
	}
	return true
}

// LegalMoves lists every legal jump in row-major order of the source cell
func (b *Board) LegalMoves() []Move {
	var moves []Move
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.get(row, col) != Full {
				continue
			}
			for _, d := range directions {
				if b.canJump(row, col, d) {
					moves = append(moves, Move{
						From: Position{Row: row, Col: col},
						To:   Position{Row: row + 2*d.dRow, Col: col + 2*d.dCol},
					})
				}
			}
		}
	}
	return moves
}

// canJump reports whether the peg at (row, col) can jump in direction d
func (b *Board) canJump(row, col int, d offset) bool {
	nRow, nCol := row+d.dRow, col+d.dCol
	tRow, tCol := row+2*d.dRow, col+2*d.dCol
	return b.InBounds(nRow, nCol) && b.get(nRow, nCol) == Full &&
		b.InBounds(tRow, tCol) && b.get(tRow, tCol) == Empty
}
