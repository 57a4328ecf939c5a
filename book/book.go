package book

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/daystram/checkers/board"
)

// RecordSize is the on-disk size of one entry: four little-endian uint32
// fields, the side to move and three bytes of padding.
const RecordSize = 20

var (
	ErrInvalidBook = errors.New("invalid opening book")

	// first moves picked at random from the starting position
	startMoves = []board.Bitmap{0x1100, 0x1200, 0x2200, 0x2400, 0x4400, 0x4800, 0x8800}
)

const (
	startBlack board.Bitmap = 0x00000FFF
	startWhite board.Bitmap = 0xFFF00000
)

// Entry is one book position with its stored reply. Move holds the from and
// to squares of the moving piece together with any captured pieces.
type Entry struct {
	Black, White, Kings board.Bitmap
	Move                board.Bitmap
	Side                board.Side
}

type Options struct {
	Logger zerolog.Logger
	Seed   int64
}

type Book struct {
	entries []Entry
	rng     *rand.Rand
	log     zerolog.Logger
}

func New(entries []Entry, opts Options) *Book {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Book{
		entries: entries,
		rng:     rand.New(rand.NewSource(seed)),
		log:     opts.Logger,
	}
}

func Open(path string, opts Options) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBook, err)
	}
	defer f.Close()
	return Read(f, opts)
}

// Read decodes a stream of book records. Entries without a move are dropped.
func Read(r io.Reader, opts Options) (*Book, error) {
	br := bufio.NewReader(r)
	var entries []Entry
	var rec [RecordSize]byte
	for {
		n, err := io.ReadFull(br, rec[:])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: truncated record %d (%d bytes)", ErrInvalidBook, len(entries), n)
		}
		e := Entry{
			Black: board.Bitmap(binary.LittleEndian.Uint32(rec[0:])),
			White: board.Bitmap(binary.LittleEndian.Uint32(rec[4:])),
			Kings: board.Bitmap(binary.LittleEndian.Uint32(rec[8:])),
			Move:  board.Bitmap(binary.LittleEndian.Uint32(rec[12:])),
			Side:  board.Side(rec[16]),
		}
		if e.Side != board.SideBlack && e.Side != board.SideWhite {
			return nil, fmt.Errorf("%w: record %d has side %d", ErrInvalidBook, len(entries), rec[16])
		}
		entries = append(entries, e)
	}

	valid := lo.Filter(entries, func(e Entry, _ int) bool { return e.Move != 0 })
	b := New(valid, opts)
	if dropped := len(entries) - len(valid); dropped > 0 {
		b.log.Warn().Int("dropped", dropped).Msg("book entries without a move")
	}
	b.log.Info().Int("entries", len(valid)).Msg("opening book loaded")
	return b, nil
}

// Encode writes e as a book record.
func (e Entry) Encode() [RecordSize]byte {
	var rec [RecordSize]byte
	binary.LittleEndian.PutUint32(rec[0:], uint32(e.Black))
	binary.LittleEndian.PutUint32(rec[4:], uint32(e.White))
	binary.LittleEndian.PutUint32(rec[8:], uint32(e.Kings))
	binary.LittleEndian.PutUint32(rec[12:], uint32(e.Move))
	rec[16] = byte(e.Side)
	return rec
}

func (bk *Book) Len() int {
	return len(bk.entries)
}

// Lookup returns the book reply for the side to move in b. From the starting
// position one of the seven first moves is chosen at random.
func (bk *Book) Lookup(b *board.Board) (board.Move, bool) {
	s := b.Turn()
	black, white := b.Pieces(board.SideBlack), b.Pieces(board.SideWhite)
	kings := b.BlackKings() | b.WhiteKings()

	var compressed board.Bitmap
	if s == board.SideBlack && kings == 0 && black == startBlack && white == startWhite {
		compressed = startMoves[bk.rng.Intn(len(startMoves))]
	} else {
		e, ok := lo.Find(bk.entries, func(e Entry) bool {
			return e.Black == black && e.White == white && e.Kings == kings && e.Side == s
		})
		if !ok {
			return board.Move{}, false
		}
		compressed = e.Move
	}

	mv, err := Expand(b, compressed)
	if err != nil {
		bk.log.Warn().Err(err).Str("fen", b.FEN()).Msg("unusable book move")
		return board.Move{}, false
	}
	return mv, true
}

// Expand turns a compressed book move into the matching legal move of b.
func Expand(b *board.Board, compressed board.Bitmap) (board.Move, error) {
	s := b.Turn()
	opp := s.Opposite()

	var toggles board.Move
	captured := compressed & b.Pieces(opp)
	own := compressed ^ captured
	men, kings := board.Bitmap(0), board.Bitmap(0)
	if own&b.Men(s) != 0 {
		men = own
	} else {
		kings = own
	}
	kings |= men & board.PromotionRank(s)
	men &^= board.PromotionRank(s)
	if s == board.SideBlack {
		toggles.BM, toggles.BK = men, kings
		toggles.WM, toggles.WK = captured&b.WhiteMen(), captured&b.WhiteKings()
	} else {
		toggles.WM, toggles.WK = men, kings
		toggles.BM, toggles.BK = captured&b.BlackMen(), captured&b.BlackKings()
	}

	var ml board.MoveList
	if err := b.GenerateMoves(s, &ml); err != nil {
		return board.Move{}, err
	}
	for _, mv := range ml.Moves() {
		if mv.Equals(toggles) {
			return mv, nil
		}
	}
	return board.Move{}, fmt.Errorf("%w: %08x is not legal", board.ErrIllegalMove, uint32(compressed))
}
