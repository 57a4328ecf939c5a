package board

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/daystram/checkers/position"
)

type Bitmap uint32

func NewBitmap(ps ...position.Pos) Bitmap {
	var bm Bitmap
	for _, p := range ps {
		bm.Set(p)
	}
	return bm
}

func Cell(p position.Pos) Bitmap {
	return Bitmap(1) << uint(p)
}

func (bm *Bitmap) Set(p position.Pos) {
	*bm |= Cell(p)
}

func (bm *Bitmap) Unset(p position.Pos) {
	*bm &^= Cell(p)
}

func (bm Bitmap) Has(p position.Pos) bool {
	return bm&Cell(p) != 0
}

// LS1B returns the least significant set bit, or 32 on an empty bitmap.
func (bm Bitmap) LS1B() position.Pos {
	return position.Pos(bits.TrailingZeros32(uint32(bm)))
}

// PopLS1B clears and returns the least significant set bit as a single-bit bitmap.
func (bm *Bitmap) PopLS1B() Bitmap {
	lsb := *bm & -*bm
	*bm &= *bm - 1
	return lsb
}

func (bm Bitmap) BitCount() int {
	return bits.OnesCount32(uint32(bm))
}

// Reverse mirrors the board, swapping the two back ranks.
func (bm Bitmap) Reverse() Bitmap {
	return Bitmap(bits.Reverse32(uint32(bm)))
}

func (bm Bitmap) Positions() []position.Pos {
	ps := make([]position.Pos, 0, bm.BitCount())
	for bm != 0 {
		ps = append(ps, bm.LS1B())
		bm &= bm - 1
	}
	return ps
}

func (bm Bitmap) Dump(sym ...rune) string {
	builder := strings.Builder{}
	for y := position.Pos(0); y < position.Width; y++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < position.Width; x++ {
			p, ok := position.NewPosFromXY(x, y)
			switch {
			case !ok:
				_, _ = builder.WriteString("   ")
			case bm.Has(p):
				s := "#"
				if len(sym) == 1 {
					s = string(sym[0])
				}
				_, _ = builder.WriteString(fmt.Sprintf(" %s ", s))
			default:
				_, _ = builder.WriteString(" . ")
			}
		}
		_, _ = builder.WriteString("\n")
	}
	return builder.String()
}

func shift(bm Bitmap, n int8) Bitmap {
	if n > 0 {
		return bm << uint(n)
	}
	return bm >> uint(-n)
}
