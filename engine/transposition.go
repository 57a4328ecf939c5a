package engine

import (
	"github.com/daystram/checkers/board"
)

type EntryType uint8

const (
	EntryTypeUnknown EntryType = iota
	EntryTypeExact
	EntryTypeLowerBound
	EntryTypeUpperBound
)

const (
	DeepTableSize    = 0x20000
	ShallowTableSize = 0x80000

	// positions closer to the root than this many plies go to the deep tier
	deepLevel = 10
	deepSlots = 2
)

type entry struct {
	lock  uint32
	best  board.Bitmap
	value int16
	depth int16
	side  board.Side
	typ   EntryType
}

// tier is a fixed-size table with its own replacement policy. slot returns the
// entry to overwrite for the given key, or nil when the store must be skipped.
type tier interface {
	find(key, lock uint32) *entry
	slot(key, lock uint32, depth int) *entry
	clear()
}

type deepTier struct {
	table []entry
	mask  uint32
}

func newDeepTier(size uint32) *deepTier {
	return &deepTier{table: make([]entry, size), mask: size - 1}
}

func (t *deepTier) find(key, lock uint32) *entry {
	index := key & t.mask
	for i := 0; i < deepSlots; i++ {
		if t.table[index].lock == lock {
			return &t.table[index]
		}
		index = (index + 1) & t.mask
	}
	return nil
}

func (t *deepTier) slot(key, lock uint32, depth int) *entry {
	index := key & t.mask
	minIndex, minDepth := index, int16(1000)
	for i := 0; i < deepSlots; i++ {
		e := &t.table[index]
		if e.lock == lock || e.lock == 0 {
			return e
		}
		if e.depth < minDepth {
			minIndex, minDepth = index, e.depth
		}
		index = (index + 1) & t.mask
	}
	if int(minDepth) > depth {
		return nil
	}
	return &t.table[minIndex]
}

func (t *deepTier) clear() {
	for i := range t.table {
		t.table[i] = entry{}
	}
}

type shallowTier struct {
	table []entry
	mask  uint32
}

func newShallowTier(size uint32) *shallowTier {
	return &shallowTier{table: make([]entry, size), mask: size - 1}
}

func (t *shallowTier) find(key, lock uint32) *entry {
	e := &t.table[key&t.mask]
	if e.lock != lock {
		return nil
	}
	return e
}

func (t *shallowTier) slot(key, lock uint32, depth int) *entry {
	e := &t.table[key&t.mask]
	if int(e.depth) > depth {
		return nil
	}
	return e
}

func (t *shallowTier) clear() {
	for i := range t.table {
		t.table[i] = entry{}
	}
}

type TranspositionTable struct {
	deep    tier
	shallow tier

	// stats
	searches int
	hits     int
	stores   int
}

func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{
		deep:    newDeepTier(DeepTableSize),
		shallow: newShallowTier(ShallowTableSize),
	}
}

func (t *TranspositionTable) tier(ply int) tier {
	if ply < deepLevel {
		return t.deep
	}
	return t.shallow
}

// Lookup searches the tier selected by ply. The stored best move is returned
// whenever the position is found; ok is set when the stored value decides the
// node, otherwise the window may have been narrowed.
func (t *TranspositionTable) Lookup(key, lock uint32, ply, depth int, s board.Side, alpha, beta int) (value, newAlpha, newBeta int, best board.Bitmap, ok bool) {
	t.searches++
	newAlpha, newBeta = alpha, beta
	e := t.tier(ply).find(key, lock)
	if e == nil || e.side != s {
		return 0, newAlpha, newBeta, 0, false
	}
	t.hits++
	best = e.best
	if int(e.depth) < depth {
		return 0, newAlpha, newBeta, best, false
	}
	v := int(e.value)
	switch e.typ {
	case EntryTypeExact:
		return v, newAlpha, newBeta, best, true
	case EntryTypeLowerBound:
		if v >= beta {
			return v, newAlpha, newBeta, best, true
		}
		newAlpha = max(alpha, v)
	case EntryTypeUpperBound:
		if v <= alpha {
			return v, newAlpha, newBeta, best, true
		}
		newBeta = min(beta, v)
	}
	return 0, newAlpha, newBeta, best, false
}

// Store records a search result. Negative depths are not stored.
func (t *TranspositionTable) Store(key, lock uint32, ply, value, alpha, beta, depth int, best board.Bitmap, s board.Side) {
	if depth < 0 {
		return
	}
	t.stores++
	e := t.tier(ply).slot(key, lock, depth)
	if e == nil {
		return
	}
	typ := EntryTypeUpperBound
	switch {
	case value >= beta:
		typ = EntryTypeLowerBound
	case value > alpha:
		typ = EntryTypeExact
	}
	*e = entry{
		lock:  lock,
		best:  best,
		value: int16(value),
		depth: int16(depth),
		side:  s,
		typ:   typ,
	}
}

func (t *TranspositionTable) Clear() {
	t.deep.clear()
	t.shallow.clear()
}

func (t *TranspositionTable) ResetStats() {
	t.searches = 0
	t.hits = 0
	t.stores = 0
}

func (t *TranspositionTable) Stats() (int, int, int) {
	return t.searches, t.hits, t.stores
}
