package engine

import (
	"github.com/daystram/checkers/board"
	"github.com/daystram/checkers/egdb"
)

const (
	ScoreWin = 5000

	scoreMan  = 100
	scoreKing = 130

	scoreDatabaseWin = 4000

	fineEvalWindow = 150
	grainSize      = 2
)

const (
	bit0 board.Bitmap = 1 << iota
	bit1
	bit2
	bit3
	bit4
	bit5
	bit6
	bit7
	bit8
	bit9
	bit10
	bit11
	bit12
	bit13
	bit14
	bit15
	bit16
	bit17
	bit18
	bit19
	bit20
	bit21
	bit22
	bit23
	bit24
	bit25
	bit26
	bit27
	bit28
	bit29
	bit30
	bit31
)

// a black man on the key square runs away when no white piece covers the mask
const (
	runaway20  board.Bitmap = 0x11000000
	runaway21L board.Bitmap = 0x32000000
	runaway21R board.Bitmap = 0x64000000
	runaway22L board.Bitmap = 0x64000000
	runaway22R board.Bitmap = 0xC8000000
	runaway23  board.Bitmap = 0xC8000000
	runaway16  board.Bitmap = 0x33100000
	runaway17  board.Bitmap = 0x77300000
	runaway18  board.Bitmap = 0xFE600000
	runaway19  board.Bitmap = 0xECC00000

	runaway8   board.Bitmap = 0x00000013
	runaway9L  board.Bitmap = 0x00000013
	runaway9R  board.Bitmap = 0x00000026
	runaway10L board.Bitmap = 0x00000026
	runaway10R board.Bitmap = 0x0000004C
	runaway11  board.Bitmap = 0x00000088
	runaway12  board.Bitmap = 0x00000337
	runaway13  board.Bitmap = 0x0000067F
	runaway14  board.Bitmap = 0x00000CEE
	runaway15  board.Bitmap = 0x000008CC
)

const (
	valueDoghole            = 5
	valueDevSingleCorner    = 5
	valueIntactDoubleCorner = 5
	valueDyke               = 2
	valueKingCenter         = 4
	valueManCenter          = 1
	valueKingEdge           = -4
	valueTurn               = 3
	valueOreo               = 5
	valueCramp              = 4
	valueRealCramp          = 20
	valueTrappedSingle      = 20
	valueTrappedSingleByTwo = 10
	valueTrappedDouble      = 10
	valueSelfTrap           = 230
	valueOnlyKing           = 20
	valueRoamingKing        = 32
	valueTheMove            = 2
	valuePromoteInOne       = 27
	valuePromoteInTwo       = 24
	valuePromoteInThree     = 18
	valueUnmobile           = 8
)

var (
	// indexed by the occupancy of the four back rank squares plus the bridge square
	scoreBackRank = [32]int{
		0, 0, 2, 2, 4, 6, 10, 10,
		1, 4, 16, 16, 6, 10, 24, 16,
		0, 0, 2, 2, 4, 10, 16, 16,
		1, 4, 16, 16, 6, 10, 24, 16,
	}

	// tempo weight by number of men on the board
	tempoModifier = [25]int{
		0, 2, 2, 2, 2, 1, 1, 1, 1, 0, 0, 0, 0,
		-1, -1, -1, -1, -2, -2, -2, -2, -3, -3, -3, -3,
	}
)

// Evaluate returns the static score of b for the side to move, with a full window.
func (e *Engine) Evaluate(b *board.Board) int {
	return e.evaluate(b, b.Turn(), -ScoreWin, ScoreWin)
}

// evaluate scores b for s. Outside the lazy window only material is counted.
func (e *Engine) evaluate(b *board.Board, s board.Side, alpha, beta int) int {
	nbm, nbk, nwm, nwk := b.PieceCounts()
	v1 := scoreMan*nbm + scoreKing*nbk
	v2 := scoreMan*nwm + scoreKing*nwk
	if v1 == 0 {
		return sideScore(s, -ScoreWin+e.ply)
	}
	if v2 == 0 {
		return sideScore(s, ScoreWin-e.ply)
	}

	if e.db != nil && nbm+nbk+nwm+nwk <= e.dbMaxPieces {
		switch e.db.Classify(b, s) {
		case egdb.Draw:
			return 0
		case egdb.Win:
			return winEval(b, s)
		case egdb.Loss:
			return lossEval(b, s)
		}
	}

	eval := material(nbm, nbk, nwm, nwk, s)
	if eval > beta+fineEvalWindow || eval < alpha-fineEvalWindow {
		return eval
	}
	eval += fineEvaluation(b, s)
	return (eval / grainSize) * grainSize
}

func sideScore(s board.Side, v int) int {
	if s == board.SideBlack {
		return v
	}
	return -v
}

// winEval scores a database win for s, nudging the winner to crown and centralise.
func winEval(b *board.Board, s board.Side) int {
	all := b.Occupied().BitCount()
	kings := b.Kings(s)
	v := scoreDatabaseWin - 100*all
	v += 10 * kings.BitCount()
	v += 2 * (kings & board.MaskCenter).BitCount()
	v += advancement(b.Men(s), s)
	return v
}

func lossEval(b *board.Board, s board.Side) int {
	return -winEval(b, s.Opposite())
}

// advancement weighs men by how far they have walked from their own back rank.
func advancement(men board.Bitmap, s board.Side) int {
	var v int
	for row := 1; row <= 6; row++ {
		w := row
		if s == board.SideWhite {
			w = 7 - row
		}
		v += w * (men & board.MaskRow[row]).BitCount()
	}
	return v
}

func has(x, mask board.Bitmap) bool {
	return x&mask == mask
}

// fineEvaluation adds the positional terms, computed for Black and signed for s.
func fineEvaluation(b *board.Board, s board.Side) int {
	bm, bk, wm, wk := b.BlackMen(), b.BlackKings(), b.WhiteMen(), b.WhiteKings()
	black, white := bm|bk, wm|wk
	free := b.Free()
	nbm, nbk, nwm, nwk := b.PieceCounts()
	stones := nbm + nwm
	kings := nbk + nwk
	all := stones + kings
	tmod := tempoModifier[stones]

	var eval int
	freeBK, freeWK := nbk, nwk
	var potBK, potWK int
	var brBlack, brWhite int

	if stones > 0 {
		// back rank
		index := int(bm & 0x0000000F)
		if bm&bit7 != 0 {
			index += 16
		}
		brBlack = scoreBackRank[index]
		index = 0
		for i, sq := range [5]board.Bitmap{bit31, bit30, bit29, bit28, bit24} {
			if wm&sq != 0 {
				index += 1 << i
			}
		}
		brWhite = scoreBackRank[index]
		eval += brBlack - brWhite

		tempo := advancement(bm, board.SideBlack) - advancement(wm, board.SideWhite)
		tempo *= tmod

		// cramping squares
		var cramp int
		if bm&bit16 != 0 && wm&bit20 != 0 {
			cramp += valueCramp
		}
		if bm&bit11 != 0 && wm&bit15 != 0 {
			cramp -= valueCramp
		}
		if bm&bit15 != 0 && has(wm, 0x00C80000) {
			cramp += valueCramp
		}
		if wm&bit16 != 0 && has(bm, 0x00001300) {
			cramp -= valueCramp
		}
		if has(bm, 0x00011100) && has(wm, 0x02320000) && has(free, 0x11000000) && has(^bm, 0x00000211) {
			cramp += valueRealCramp
		}
		if has(bm, 0x00008880) && has(wm, 0x004C4000) && has(free, 0x08800000) && has(^bm, 0x00000048) {
			cramp += valueRealCramp
		}
		if has(wm, 0x01110000) && has(bm, 0x00023200) && has(free, 0x00000110) && has(^wm, 0x12000000) {
			cramp -= valueRealCramp
		}
		if has(wm, 0x00888000) && has(bm, 0x00004C40) && has(free, 0x00000088) && has(^wm, 0x88400000) {
			cramp -= valueRealCramp
		}
		eval += cramp

		if nbm == nwm {
			eval += abs(balance(white)) - abs(balance(black))
			eval += theMove(b.Occupied(), s, all)
		}

		eval += valueManCenter * ((bm & board.MaskCenter).BitCount() - (wm & board.MaskCenter).BitCount())

		// dogholes also cancel the tempo gained by sitting in them
		var doghole int
		if bm&bit1 != 0 && wm&bit8 != 0 {
			if tmod > 0 {
				tempo += 5 * tmod
			}
			doghole += valueDoghole
		}
		if bm&bit3 != 0 && wm&bit7 != 0 {
			if tmod > 0 {
				tempo += 6 * tmod
			}
			doghole += valueDoghole
		}
		if bm&bit24 != 0 && wm&bit28 != 0 {
			if tmod > 0 {
				tempo -= 6 * tmod
			}
			doghole -= valueDoghole
		}
		if bm&bit23 != 0 && wm&bit30 != 0 {
			if tmod > 0 {
				tempo -= 5 * tmod
			}
			doghole -= valueDoghole
		}
		eval += doghole
		eval += tempo

		if has(bm, bit1|bit2|bit5) {
			eval += valueOreo
		}
		if has(wm, bit29|bit30|bit26) {
			eval -= valueOreo
		}

		if bm&(bit0|bit4) == 0 {
			eval += valueDevSingleCorner
		}
		if wm&(bit31|bit27) == 0 {
			eval -= valueDevSingleCorner
		}

		if bm&bit3 != 0 && bm&(bit6|bit7) != 0 {
			eval += valueIntactDoubleCorner
		}
		if wm&bit28 != 0 && wm&(bit24|bit25) != 0 {
			eval -= valueIntactDoubleCorner
		}

		eval += valueDyke * ((bm & 0x00022400).BitCount() - (wm & 0x00244000).BitCount())

		runaway, pb, pw := runaways(bm, wm, black, white, free, tmod)
		potBK += pb
		potWK += pw
		eval += runaway
	}

	if kings > 0 {
		eval += valueKingCenter * ((bk & board.MaskCenter).BitCount() - (wk & board.MaskCenter).BitCount())
		eval += valueKingEdge * ((bk & board.MaskEdge).BitCount() - (wk & board.MaskEdge).BitCount())

		var trapped int
		if wk&bit0 != 0 && bm&bit1 != 0 && free&bit8 != 0 {
			freeWK--
			trapped += valueTrappedSingle
		}
		if bk&bit31 != 0 && wm&bit30 != 0 && free&bit23 != 0 {
			freeBK--
			trapped -= valueTrappedSingle
		}
		if wk&(bit0|bit4) != 0 && wm&bit8 != 0 && has(bm, bit1|bit5) {
			freeWK--
			trapped += valueTrappedSingleByTwo
		}
		if bk&(bit27|bit31) != 0 && bm&bit23 != 0 && has(wm, bit30|bit26) {
			freeBK--
			trapped -= valueTrappedSingleByTwo
		}
		if bk&bit28 != 0 && has(wm, bit24|bit29) {
			freeBK--
			trapped -= valueTrappedDouble
		}
		if wk&bit3 != 0 && has(bm, bit2|bit7) {
			freeWK--
			trapped += valueTrappedDouble
		}
		eval += trapped

		if bk&bit31 != 0 && wm&bit30 != 0 && has(bm, bit27|bit23) {
			freeBK--
			eval -= valueSelfTrap
		}
		if wk&bit0 != 0 && bm&bit1 != 0 && has(wm, bit4|bit8) {
			freeWK--
			eval += valueSelfTrap
		}
	}

	// a lone free king is worth a man when the back rank holds
	if potBK+freeBK > 0 && potWK+freeWK == 0 {
		eval += valueOnlyKing + brBlack - brWhite
		if bk&board.MaskCenter != 0 {
			eval += valueRoamingKing
		}
	}
	if potWK+freeWK > 0 && potBK+freeBK == 0 {
		eval += -valueOnlyKing + brBlack - brWhite
		if wk&board.MaskCenter != 0 {
			eval -= valueRoamingKing
		}
	}

	eval += sideScore(s, valueTurn)
	eval += mobility(b, s)
	return sideScore(s, eval)
}

// balance is negative when pieces lean to the left wing, positive to the right.
func balance(pieces board.Bitmap) int {
	count := func(mask board.Bitmap) int {
		return (pieces & mask).BitCount()
	}
	return -3*count(0x01010101) - 2*count(0x10101010) - count(0x02020202) +
		count(0x40404040) + 2*count(0x08080808) + 3*count(0x80808080)
}

// theMove rewards holding the opposition, counted over the side's own system of squares.
func theMove(occupied board.Bitmap, s board.Side, all int) int {
	v := valueTheMove * (24 - all) / 6
	if s == board.SideBlack {
		if (occupied&board.MaskEvenRows).BitCount()%2 == 1 {
			return v
		}
		return -v
	}
	if (occupied&board.MaskOddRows).BitCount()%2 == 1 {
		return -v
	}
	return v
}

func runaways(bm, wm, black, white, free board.Bitmap, tmod int) (int, int, int) {
	var v, potBK, potWK int

	// crowning in one
	if bm&0x0F000000 != 0 {
		near := (free >> 3) | (free >> 4)
		for _, sq := range [4]board.Bitmap{bit24, bit25, bit26, bit27} {
			target := near
			if sq == bit24 {
				target = free >> 4
			}
			if bm&target&sq != 0 {
				v += valuePromoteInOne - 6*tmod
				potBK++
			}
		}
	}
	if wm&0x000000F0 != 0 {
		near := (free << 3) | (free << 4)
		for _, sq := range [4]board.Bitmap{bit7, bit6, bit5, bit4} {
			target := near
			if sq == bit7 {
				target = free << 4
			}
			if wm&target&sq != 0 {
				v -= valuePromoteInOne - 6*tmod
				potWK++
			}
		}
	}

	// crowning in two
	if bm&0x00F00000 != 0 {
		if bm&bit20 != 0 && runaway20&white == 0 {
			v += valuePromoteInTwo - 5*tmod
			potBK++
		}
		if bm&bit21 != 0 && (runaway21L&white == 0 || runaway21R&white == 0) {
			v += valuePromoteInTwo - 5*tmod
			potBK++
		}
		if bm&bit22 != 0 && (runaway22L&white == 0 || runaway22R&white == 0) {
			v += valuePromoteInTwo - 5*tmod
			potBK++
		}
		if bm&bit23 != 0 && runaway23&white == 0 {
			v += valuePromoteInTwo - 5*tmod
			potBK++
		}
	}
	if wm&0x00000F00 != 0 {
		if wm&bit8 != 0 && runaway8&black == 0 {
			v -= valuePromoteInTwo - 5*tmod
			potWK++
		}
		if wm&bit9 != 0 && (runaway9L&black == 0 || runaway9R&black == 0) {
			v -= valuePromoteInTwo - 5*tmod
			potWK++
		}
		if wm&bit10 != 0 && (runaway10L&black == 0 || runaway10R&black == 0) {
			v -= valuePromoteInTwo - 5*tmod
			potWK++
		}
		if wm&bit11 != 0 && runaway11&black == 0 {
			v -= valuePromoteInTwo - 5*tmod
			potWK++
		}
	}

	// crowning in three
	if bm&0x000F0000 != 0 {
		for _, r := range [4][2]board.Bitmap{{bit16, runaway16}, {bit17, runaway17}, {bit18, runaway18}, {bit19, runaway19}} {
			if bm&r[0] != 0 && r[1]&white == 0 {
				v += valuePromoteInThree - 4*tmod
			}
		}
	}
	if wm&0x0000F000 != 0 {
		for _, r := range [4][2]board.Bitmap{{bit12, runaway12}, {bit13, runaway13}, {bit14, runaway14}, {bit15, runaway15}} {
			if wm&r[0] != 0 && r[1]&black == 0 {
				v -= valuePromoteInThree - 4*tmod
			}
		}
	}

	// bridges
	if bm&bit21 != 0 && has(wm, bit28|bit30) && free&bit29 != 0 {
		if has(free, bit24|bit25) && bm&bit20 != 0 {
			v += valuePromoteInTwo - 5*tmod
		}
		if has(free, bit26|bit27) && bm&bit22 != 0 {
			v += valuePromoteInTwo - 5*tmod
		}
	}
	if wm&bit10 != 0 && has(bm, bit1|bit3) && free&bit2 != 0 {
		if has(free, bit4|bit5) && wm&bit9 != 0 {
			v -= valuePromoteInTwo - 5*tmod
		}
		if has(free, bit6|bit7) && wm&bit11 != 0 {
			v -= valuePromoteInTwo - 5*tmod
		}
	}
	return v, potBK, potWK
}

// mobility compares the squares each side can step to with those the opponent covers.
func mobility(b *board.Board, s board.Side) int {
	blackTargets, whiteTargets := b.Targets(board.SideBlack), b.Targets(board.SideWhite)
	var v int

	nFree := (blackTargets &^ whiteTargets).BitCount()
	nAttacked := (blackTargets & whiteTargets).BitCount()
	nAll := blackTargets.BitCount()
	v += nFree - nAttacked
	if s == board.SideBlack {
		if nFree < 2 && nAll > 5 {
			v -= valueUnmobile
		}
		if nFree == 0 {
			v -= valueUnmobile
		}
	}

	nFree = (whiteTargets &^ blackTargets).BitCount()
	nAttacked = (whiteTargets & blackTargets).BitCount()
	nAll = whiteTargets.BitCount()
	v -= nFree - nAttacked
	if s == board.SideWhite {
		if nFree < 2 && nAll > 5 {
			v += valueUnmobile
		}
		if nFree == 0 {
			v += valueUnmobile
		}
	}
	return v
}
