package egdb

import (
	"math/bits"

	"golang.org/x/exp/constraints"

	"github.com/daystram/checkers/board"
)

const (
	maxSquares = 32
	maxPerType = 12
)

// binomial holds n choose k for 0 <= n, k <= 32; entries with k > n are zero.
var binomial [maxSquares + 1][maxSquares + 1]int64

func init() {
	for n := 0; n <= maxSquares; n++ {
		binomial[n][0] = 1
		for k := 1; k <= n; k++ {
			binomial[n][k] = binomial[n-1][k] + binomial[n-1][k-1]
		}
	}
}

func choose(n, k int) int64 {
	if n < 0 || k < 0 || k > n {
		return 0
	}
	return binomial[n][k]
}

// sliceKey identifies one slice: piece counts plus the leading rank of each
// side's men. Ranks are zero for a side without men.
type sliceKey struct {
	bk, wk, bm, wm int
	rankBM, rankWM int
}

func (k sliceKey) pieces() int {
	return k.bk + k.wk + k.bm + k.wm
}

// subIndex is the cumulative number of white man placements preceding one
// black man configuration, plus the square count the first placement rank starts at.
type subIndex struct {
	base int64
	fsq  int
}

type slice struct {
	key sliceKey

	uniform bool
	value   Value // uniform value, or the dominant value of a compressed slice

	startBlock int
	startByte  int
	endBlock   int

	rangeBK, rangeWK int64
	firstBMIdx       int64
	sidx             []subIndex
	numPos           int64
}

func newUniformSlice(key sliceKey, v Value) *slice {
	return &slice{key: key, uniform: true, value: v}
}

func newSlice(key sliceKey, def Value) *slice {
	s := &slice{key: key, value: def}
	s.rangeBK = choose(maxSquares-key.bm-key.wm, key.bk)
	s.rangeWK = choose(maxSquares-key.bm-key.wm-key.bk, key.wk)
	s.buildSubIndex()
	s.numPos *= s.rangeBK * s.rangeWK
	return s
}

// buildSubIndex walks every black man configuration of the slice in colex
// order, accumulating the white man placements each one allows.
func (s *slice) buildSubIndex() {
	nBM, nWM := s.key.bm, s.key.wm
	count := int64(1)
	var pos [maxPerType]int
	if nBM > 0 {
		s.firstBMIdx = choose(s.key.rankBM<<2, nBM)
		count = choose((s.key.rankBM+1)<<2, nBM) - s.firstBMIdx
		for i := 0; i < nBM-1; i++ {
			pos[i] = i
		}
		pos[nBM-1] = max(s.key.rankBM<<2, nBM-1)
	}

	s.sidx = make([]subIndex, 0, count)
	var base int64
	for ; count > 0; count-- {
		if nWM == 0 {
			s.sidx = append(s.sidx, subIndex{base: base})
			base++
		} else {
			nsqr1 := availableSquares(s.key.rankWM-1, pos[:nBM])
			nsqr2 := availableSquares(s.key.rankWM, pos[:nBM])
			s.sidx = append(s.sidx, subIndex{base: base, fsq: nsqr1})
			base += choose(nsqr2, nWM) - choose(nsqr1, nWM)
		}
		if nBM > 0 {
			nextCombination(pos[:nBM])
		}
	}
	s.numPos = base
}

// availableSquares counts the squares left to white men whose leading rank
// is at most the given one.
func availableSquares(rank int, black []int) int {
	if rank < 0 {
		return 0
	}
	hit := (7 - rank) << 2
	n := (rank + 1) << 2
	for _, sq := range black {
		if sq >= hit {
			n--
		}
	}
	return n
}

// nextCombination advances an ascending combination to its colex successor:
// (0,1,2) (0,1,3) (0,2,3) (1,2,3) (0,1,4) ...
func nextCombination(pos []int) {
	i := 0
	for ; i < len(pos)-1 && pos[i] == pos[i+1]-1; i++ {
		pos[i] = i
	}
	pos[i]++
}

// descending lists the squares of bm from highest to lowest.
func descending(bm board.Bitmap, out *[maxPerType]int) int {
	n := 0
	for bm != 0 && n < maxPerType {
		sq := 31 - bitsLeading(bm)
		out[n] = sq
		n++
		bm &^= board.Bitmap(1) << uint(sq)
	}
	return n
}

// revIndex is the colex rank of a combination given in descending order.
func revIndex(pos []int) int64 {
	var idx int64
	k := len(pos)
	for _, p := range pos {
		idx += choose(p, k)
		k--
	}
	return idx
}

// index computes the position number of a black-to-move position within the slice.
func (s *slice) index(bm, bk, wm, wk board.Bitmap) int64 {
	var bmPos, wmPos, bkPos, wkPos, hits [maxPerType]int
	nBM := descending(bm, &bmPos)
	nWM := descending(wm, &wmPos)
	nBK := descending(bk, &bkPos)
	nWK := descending(wk, &wkPos)

	var bmIdx int64
	if nBM > 0 {
		bmIdx = revIndex(bmPos[:nBM]) - s.firstBMIdx
	}

	// white men count from White's back rank, skipping black men in front of them
	var wmIdx int64
	if nWM > 0 {
		for i := 0; i < nWM; i++ {
			above := 0
			for _, sq := range bmPos[:nBM] {
				if sq > wmPos[i] {
					above++
				}
			}
			hits[nWM-1-i] = 31 - (wmPos[i] + above)
		}
		// hits is now descending
		wmIdx = revIndex(hits[:nWM])
	}

	var bkIdx int64
	if nBK > 0 {
		for i := 0; i < nBK; i++ {
			hits[i] = bkPos[i] - countBelow(bkPos[i], wmPos[:nWM]) - countBelow(bkPos[i], bmPos[:nBM])
		}
		bkIdx = revIndex(hits[:nBK])
	}

	var wkIdx int64
	if nWK > 0 {
		for i := 0; i < nWK; i++ {
			hits[i] = wkPos[i] - countBelow(wkPos[i], bkPos[:nBK]) -
				countBelow(wkPos[i], wmPos[:nWM]) - countBelow(wkPos[i], bmPos[:nBM])
		}
		wkIdx = revIndex(hits[:nWK])
	}

	sub := s.sidx[bmIdx]
	first := int64(0)
	if s.key.wm > 0 {
		first = choose(sub.fsq, s.key.wm)
	}
	final := sub.base + wmIdx - first
	return (final*s.rangeBK+bkIdx)*s.rangeWK + wkIdx
}

func countBelow(sq int, others []int) int {
	n := 0
	for _, o := range others {
		if o < sq {
			n++
		}
	}
	return n
}

// leadingRanks returns the leading rank of the black men (their most advanced
// row) and of the white men (counted from White's back rank).
func leadingRanks(bm, wm board.Bitmap) (int, int) {
	rankBM, rankWM := 0, 0
	if bm != 0 {
		rankBM = (31 - bitsLeading(bm)) >> 2
	}
	if wm != 0 {
		rankWM = (31 - int(wm.LS1B())) >> 2
	}
	return rankBM, rankWM
}

func bitsLeading(bm board.Bitmap) int {
	return bits.LeadingZeros32(uint32(bm))
}

func max[T constraints.Ordered](x1, x2 T) T {
	if x1 > x2 {
		return x1
	}
	return x2
}

func min[T constraints.Ordered](x1, x2 T) T {
	if x1 < x2 {
		return x1
	}
	return x2
}
