package board

const (
	hashKey = iota
	hashLock
)

const (
	pieceBM = iota
	pieceBK
	pieceWM
	pieceWK
)

var hashXors [2][4][TotalCells]uint32

func init() {
	r := NewPseudoRand()
	r.Seed(1)
	for t := range hashXors {
		for p := range hashXors[t] {
			for sq := range hashXors[t][p] {
				hashXors[t][p][sq] = uint32(r.Uint64() >> 32)
			}
		}
	}
}

// PseudoRand is a xorshift generator, deterministic for a given seed.
type PseudoRand struct {
	s uint64
}

func NewPseudoRand() *PseudoRand {
	return &PseudoRand{s: 1}
}

func (r *PseudoRand) Seed(seed uint64) {
	if seed == 0 {
		seed = 1
	}
	r.s = seed
}

func (r *PseudoRand) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

func (r *PseudoRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Uint64() % uint64(n))
}

func hashBitmap(key, lock uint32, piece int, bm Bitmap) (uint32, uint32) {
	for bm != 0 {
		sq := bm.LS1B()
		key ^= hashXors[hashKey][piece][sq]
		lock ^= hashXors[hashLock][piece][sq]
		bm &= bm - 1
	}
	return key, lock
}

// UpdateHash folds the toggles of mv into the board hash.
func (b *Board) UpdateHash(mv Move) {
	b.key, b.lock = hashBitmap(b.key, b.lock, pieceBM, mv.BM)
	b.key, b.lock = hashBitmap(b.key, b.lock, pieceBK, mv.BK)
	b.key, b.lock = hashBitmap(b.key, b.lock, pieceWM, mv.WM)
	b.key, b.lock = hashBitmap(b.key, b.lock, pieceWK, mv.WK)
}

// AbsoluteHash recomputes the hash from the piece sets.
func (b *Board) AbsoluteHash() (uint32, uint32) {
	var key, lock uint32
	key, lock = hashBitmap(key, lock, pieceBM, b.bm)
	key, lock = hashBitmap(key, lock, pieceBK, b.bk)
	key, lock = hashBitmap(key, lock, pieceWM, b.wm)
	key, lock = hashBitmap(key, lock, pieceWK, b.wk)
	return key, lock
}

// Hash returns the incrementally maintained key and lock.
func (b *Board) Hash() (uint32, uint32) {
	return b.key, b.lock
}
