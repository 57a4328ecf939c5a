package engine

import (
	"github.com/daystram/checkers/board"
)

const (
	orderHashMove = 1000
	orderKiller   = 100
	orderBase     = 128

	orderPromotion  = 20
	orderPromotion1 = 18
	orderPromotion2 = 16
	orderGiveUpBack = -12
	orderCapture    = 50

	orderManC3  = 2
	orderManC4  = 4
	orderKingC1 = -10
	orderKingC3 = 5
	orderKingC4 = 10

	maskC1 board.Bitmap = 0xF181818F
	maskC3 board.Bitmap = 0x00624600
	maskC4 board.Bitmap = 0x00042000
)

var (
	maskBeforePromotion1 = [3]board.Bitmap{board.SideBlack: 0x0F000000, board.SideWhite: 0x000000F0}
	maskBeforePromotion2 = [3]board.Bitmap{board.SideBlack: 0x00F00000, board.SideWhite: 0x00000F00}
	maskBackRankGuard    = [3]board.Bitmap{board.SideBlack: 0x0000000E, board.SideWhite: 0x70000000}
)

// orderQuiet scores the quiet moves in ml for s and sorts them best first.
// Lists of a single move are left alone.
func orderQuiet(b *board.Board, s board.Side, ml *board.MoveList, h *HistoryTable, hashMove, killer board.Bitmap) {
	if ml.Len() < 2 {
		return
	}
	for i := 0; i < ml.Len(); i++ {
		mv := ml.At(i)
		own := mv.Own(s)
		score := int32(orderBase)
		if hashMove != 0 && own == hashMove {
			score += orderHashMove
		}
		if killer != 0 && own == killer {
			score += orderKiller
		}
		score += h.Score(mv.From, mv.To)
		score += staticOrder(mv, s)
		score += captureOrder(b, s, mv)
		mv.Score = score
		ml.Set(i, mv)
	}
	ml.Sort()
}

func staticOrder(mv board.Move, s board.Side) int32 {
	from, to := board.Cell(mv.From), board.Cell(mv.To)
	men, kings := mv.BM, mv.BK
	if s == board.SideWhite {
		men, kings = mv.WM, mv.WK
	}

	var score int32
	if mv.IsPromote {
		score += orderPromotion
	}
	if men != 0 {
		if to&maskBeforePromotion1[s] != 0 {
			score += orderPromotion1
		}
		if to&maskBeforePromotion2[s] != 0 {
			score += orderPromotion2
		}
		if from&maskBackRankGuard[s] != 0 {
			score += orderGiveUpBack
		}
		score += regionDelta(from, to, maskC3, orderManC3)
		score += regionDelta(from, to, maskC4, orderManC4)
	}
	if kings != 0 {
		score += regionDelta(from, to, maskC4, orderKingC4)
		score += regionDelta(from, to, maskC3, orderKingC3)
		score += regionDelta(from, to, maskC1, orderKingC1)
	}
	return score
}

// regionDelta rewards entering a region and penalises leaving it.
func regionDelta(from, to, region board.Bitmap, value int32) int32 {
	var d int32
	if to&region != 0 {
		d += value
	}
	if from&region != 0 {
		d -= value
	}
	return d
}

// captureOrder plays the mover's toggles and checks who can capture afterwards.
func captureOrder(b *board.Board, s board.Side, mv board.Move) int32 {
	b.Toggle(mv)
	defer b.Toggle(mv)
	if b.HasCapture(s.Opposite()) {
		return -orderCapture
	}
	if b.HasCapture(s) {
		return orderCapture
	}
	return 0
}
