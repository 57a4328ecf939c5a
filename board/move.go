package board

import (
	"fmt"

	"github.com/daystram/checkers/position"
)

// Move is a set of toggles; applying the same move twice restores the board.
type Move struct {
	BM, BK, WM, WK Bitmap
	From, To       position.Pos

	IsTurn    Side
	IsCapture bool
	IsPromote bool
	Score     int32
}

func (m Move) String() string {
	return m.Notation()
}

// Notation returns the move in standard checkers notation, e.g. 11-15 or 15x24.
func (m Move) Notation() string {
	if m.IsNull() {
		return ""
	}
	sep := '-'
	if m.IsCapture {
		sep = 'x'
	}
	return fmt.Sprintf("%s%c%s", m.From.Notation(), sep, m.To.Notation())
}

// Own returns the toggles of the moving side, i.e. its from and to squares.
func (m Move) Own(s Side) Bitmap {
	if s == SideBlack {
		return m.BM | m.BK
	}
	return m.WM | m.WK
}

// Captured returns the opponent pieces removed by this move.
func (m Move) Captured(s Side) Bitmap {
	return m.Own(s.Opposite())
}

func (m Move) IsNull() bool {
	return m.BM|m.BK|m.WM|m.WK == 0 && m.From == m.To
}

func (m Move) Equals(n Move) bool {
	return m.BM == n.BM && m.BK == n.BK && m.WM == n.WM && m.WK == n.WK
}
