package board

import (
	"github.com/daystram/checkers/position"
)

const (
	TotalCells = position.MaxSquares

	// Black moves towards higher bits, White towards lower bits.
	DefaultStartingPositionFEN = "B:W21,22,23,24,25,26,27,28,29,30,31,32:B1,2,3,4,5,6,7,8,9,10,11,12"
)

const (
	// quiet move source masks; 1 are even rows, 2 are odd rows
	MaskLF1 Bitmap = 0x0E0E0E0E
	MaskLF2 Bitmap = 0x00F0F0F0
	MaskRF1 Bitmap = 0x0F0F0F0F
	MaskRF2 Bitmap = 0x00707070
	MaskLB1 Bitmap = 0x0E0E0E00
	MaskLB2 Bitmap = 0xF0F0F0F0
	MaskRB1 Bitmap = 0x0F0F0F00
	MaskRB2 Bitmap = 0x70707070

	// jump source masks
	MaskLFJ1 Bitmap = 0x000E0E0E
	MaskLFJ2 Bitmap = 0x00E0E0E0
	MaskRFJ1 Bitmap = 0x00070707
	MaskRFJ2 Bitmap = 0x00707070
	MaskLBJ1 Bitmap = 0x0E0E0E00
	MaskLBJ2 Bitmap = 0xE0E0E000
	MaskRBJ1 Bitmap = 0x07070700
	MaskRBJ2 Bitmap = 0x70707000

	MaskWhiteBackRank    Bitmap = 0xF0000000
	MaskBlackBackRank    Bitmap = 0x0000000F
	MaskNotWhiteBackRank Bitmap = 0x0FFFFFFF
	MaskNotBlackBackRank Bitmap = 0xFFFFFFF0

	MaskCenter Bitmap = 0x00666600
	MaskEdge   Bitmap = 0xF181818F

	MaskEvenRows Bitmap = 0x0F0F0F0F
	MaskOddRows  Bitmap = 0xF0F0F0F0
	MaskAll      Bitmap = 0xFFFFFFFF
)

// MaskRow holds the squares of each row, row 0 being Black's back rank.
var MaskRow = [8]Bitmap{
	0x0000000F,
	0x000000F0,
	0x00000F00,
	0x0000F000,
	0x000F0000,
	0x00F00000,
	0x0F000000,
	0xF0000000,
}

// step is a single diagonal displacement, positive towards White.
type step struct {
	mask  Bitmap
	shift int8
}

// jump is a capture displacement over an adjacent piece.
type jump struct {
	mask       Bitmap
	over, land int8
}

var (
	stepLF1 = step{MaskLF1, 3}
	stepLF2 = step{MaskLF2, 4}
	stepRF1 = step{MaskRF1, 4}
	stepRF2 = step{MaskRF2, 5}
	stepLB1 = step{MaskLB1, -5}
	stepLB2 = step{MaskLB2, -4}
	stepRB1 = step{MaskRB1, -4}
	stepRB2 = step{MaskRB2, -3}

	jumpLFJ1 = jump{MaskLFJ1, 3, 7}
	jumpLFJ2 = jump{MaskLFJ2, 4, 7}
	jumpRFJ1 = jump{MaskRFJ1, 4, 9}
	jumpRFJ2 = jump{MaskRFJ2, 5, 9}
	jumpLBJ1 = jump{MaskLBJ1, -5, -9}
	jumpLBJ2 = jump{MaskLBJ2, -4, -9}
	jumpRBJ1 = jump{MaskRBJ1, -4, -7}
	jumpRBJ2 = jump{MaskRBJ2, -3, -7}

	forwardSteps  = [4]step{stepLF1, stepLF2, stepRF1, stepRF2}
	backwardSteps = [4]step{stepLB1, stepLB2, stepRB1, stepRB2}
	allJumps      = [8]jump{jumpLFJ1, jumpLFJ2, jumpRFJ1, jumpRFJ2, jumpLBJ1, jumpLBJ2, jumpRBJ1, jumpRBJ2}
)
