package egdb

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/daystram/checkers/board"
)

// skipRun maps a byte value above 242 to the number of consecutive positions
// holding the slice's dominant value.
var skipRun = [14]int64{0, 10, 15, 20, 25, 30, 40, 50, 60, 100, 200, 400, 800, 1600}

// digit holds the divisors used to pull one of five ternary values out of a
// byte, the first position being the most significant digit.
var digit = [7]int{0, 1, 3, 9, 27, 81, 243}

// Database answers win/loss/draw queries for positions with few pieces from
// a compressed tablebase. It is safe for concurrent use.
type Database struct {
	cfg   Config
	log   zerolog.Logger
	file  *os.File
	index *index
	cache *blockCache

	lookups, misses atomic.Int64
}

type Stats struct {
	Lookups      int64
	Misses       int64
	BlockHits    int64
	BlockReads   int64
	CachedBlocks int
}

func Open(cfg Config) (*Database, error) {
	if cfg.MaxPieces < 2 {
		cfg.MaxPieces = DefaultMaxPieces
	}
	if cfg.Buffers < 1 {
		cfg.Buffers = DefaultBuffers
	}

	idxFile, err := os.Open(cfg.IndexFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndex, err)
	}
	defer idxFile.Close()
	idx, err := parseIndex(idxFile, cfg.MaxPieces)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if lastBlock := len(idx.blocks) - 1; int64(lastBlock)*DiskBlock >= info.Size() && lastBlock >= 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: block %d beyond end of %s", ErrInvalidIndex, lastBlock, cfg.DatabaseFile)
	}
	cache, err := newBlockCache(f, info.Size(), cfg.Buffers)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	db := &Database{
		cfg:   cfg,
		log:   cfg.Logger,
		file:  f,
		index: idx,
		cache: cache,
	}
	db.log.Info().
		Str("file", cfg.DatabaseFile).
		Int("slices", len(idx.slices)).
		Int("blocks", len(idx.blocks)).
		Int("max_pieces", idx.maxPieces).
		Int("buffers", cfg.Buffers).
		Msg("endgame database loaded")
	return db, nil
}

func (db *Database) Close() error {
	return db.file.Close()
}

// MaxPieces is the largest total piece count covered by the loaded slices.
func (db *Database) MaxPieces() int {
	return db.index.maxPieces
}

func (db *Database) Stats() Stats {
	return Stats{
		Lookups:      db.lookups.Load(),
		Misses:       db.misses.Load(),
		BlockHits:    db.cache.hits.Load(),
		BlockReads:   db.cache.reads.Load(),
		CachedBlocks: db.cache.len(),
	}
}

// Classify returns the value of the position for s, the side to move.
// Results are only meaningful when neither side has a capture.
func (db *Database) Classify(b *board.Board, s board.Side) Value {
	bm, bk, wm, wk := b.BlackMen(), b.BlackKings(), b.WhiteMen(), b.WhiteKings()
	if s == board.SideWhite {
		bm, bk, wm, wk = wm.Reverse(), wk.Reverse(), bm.Reverse(), bk.Reverse()
	}
	if bm|bk == 0 || wm|wk == 0 {
		return Unknown
	}

	key := sliceKey{bk: bk.BitCount(), wk: wk.BitCount(), bm: bm.BitCount(), wm: wm.BitCount()}
	if key.pieces() > db.index.maxPieces {
		return Unknown
	}
	key.rankBM, key.rankWM = leadingRanks(bm, wm)
	sl, ok := db.index.slices[key]
	if !ok {
		return Unknown
	}
	db.lookups.Add(1)
	if sl.uniform {
		return sl.value
	}

	pos := sl.index(bm, bk, wm, wk)
	v, err := db.scan(sl, pos)
	if err != nil {
		db.misses.Add(1)
		db.log.Warn().Err(err).Int64("position", pos).Msg("endgame database lookup failed")
		return Unknown
	}
	return v
}

// scan finds the block holding pos and decodes its value.
func (db *Database) scan(sl *slice, pos int64) (Value, error) {
	start, end := sl.startBlock, sl.endBlock
	for start < end {
		middle := (start + end + 1) / 2
		if db.index.blocks[middle] <= pos {
			start = middle
		} else {
			end = middle - 1
		}
	}

	data, err := db.cache.block(start)
	if err != nil {
		return Unknown, err
	}
	i, cur := 0, db.index.blocks[start]
	if start == sl.startBlock {
		i, cur = sl.startByte, 0
	}
	for ; i < len(data); i++ {
		c := int(data[i])
		if c > 242 {
			cur += skipRun[c-242]
			if pos < cur {
				return sl.value, nil
			}
			continue
		}
		if cur+5 <= pos {
			cur += 5
			continue
		}
		diff := int(pos - cur)
		return Value(c % digit[5-diff+1] / digit[5-diff]), nil
	}
	return Unknown, fmt.Errorf("position not found in block %d (reached %d)", start, cur)
}
