package engine

import (
	"strings"

	"github.com/samber/lo"

	"github.com/daystram/checkers/board"
)

const pvLength = 10

// principalVariation starts with the chosen move and follows the stored best
// moves after it, falling back to the first ordered move where the table has
// nothing.
func (e *Engine) principalVariation(b *board.Board, first board.Move) []board.Move {
	bb := b.Clone()
	bb.Apply(first)
	var ml board.MoveList
	line := make([]board.Move, 0, pvLength)
	line = append(line, first)
	for ply := 1; ply < pvLength; ply++ {
		s := bb.Turn()
		key, lock := bb.Hash()
		_, _, _, best, _ := e.tt.Lookup(key, lock, ply, 0, s, -scoreInfinite, scoreInfinite)
		if err := bb.GenerateCaptures(s, best, &ml); err != nil {
			break
		}
		if ml.Len() == 0 {
			if err := bb.GenerateQuiet(s, &ml); err != nil {
				break
			}
			orderQuiet(bb, s, &ml, &e.history, best, 0)
		}
		if ml.Len() == 0 {
			break
		}
		mv := ml.At(0)
		line = append(line, mv)
		bb.Apply(mv)
	}
	return line
}

// FormatLine writes moves in notation, separated by spaces.
func FormatLine(line []board.Move) string {
	return strings.Join(lo.Map(line, func(mv board.Move, _ int) string {
		return mv.Notation()
	}), " ")
}
