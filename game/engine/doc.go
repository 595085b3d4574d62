// Package engine provides the core game logic for peg solitaire.
//
// The engine package implements:
//   - Cross-shaped board generation for any odd size of at least 7
//   - Jump validation and application with atomic semantics
//   - Stall (no legal move) and win detection
//   - Board presets loaded from YAML or JSON files
//
// Core Types:
//
// Board owns the grid of cells and is the only place pegs move. GameEngine
// wraps a Board for a play session, adding the preset it was built from and a
// move history. Cell is one of Illegal, Empty or Full and renders as the
// symbols "I", "E" and "F".
//
// Usage:
//
//	board, err := engine.NewBoard(7)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Jump the peg at (3,1) over (3,2) into the center
//	if err := board.Move(3, 1, 3, 3); err != nil {
//		if errors.Is(err, engine.ErrIllegalMove) {
//			// not a jump
//		}
//	}
//	fmt.Println(board.PiecesLeft(), board.Stalled(), board.Win())
//
// Errors:
//
// Construction fails with ErrInvalidConfiguration. A rejected move returns a
// *MoveError wrapping ErrSourceNotFull, ErrDestinationNotEmpty or
// ErrIllegalMove and leaves the board untouched.
//
// Neither Board nor GameEngine is safe for concurrent use; callers serialize
// access to a single instance.
package engine
