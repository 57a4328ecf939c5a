package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/checkers/position"
)

var (
	ErrInvalidFEN  = errors.New("invalid fen")
	ErrIllegalMove = errors.New("illegal move")

	colorLabel     = color.New(color.Bold)
	colorDarkCell  = color.New(color.FgHiWhite, color.BgGreen)
	colorLightCell = color.New(color.FgBlack, color.BgHiWhite)
	colorBlack     = color.New(color.FgBlack, color.BgGreen, color.Bold)
	colorWhite     = color.New(color.FgHiWhite, color.BgGreen, color.Bold)
)

// Board is a checkers position: four disjoint piece sets, the side to move and
// the incrementally updated hash of the piece sets.
type Board struct {
	bm, bk, wm, wk Bitmap
	turn           Side

	key, lock uint32
}

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{
		fen: DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}

	b := &Board{}
	if err := UnmarshalFEN(cfg.fen, b); err != nil {
		return nil, err
	}
	b.key, b.lock = b.AbsoluteHash()
	return b, nil
}

// NewBoardFromBitmaps builds a board from raw piece sets. Overlapping sets are rejected.
func NewBoardFromBitmaps(bm, bk, wm, wk Bitmap, turn Side) (*Board, error) {
	if bm&bk != 0 || bm&wm != 0 || bm&wk != 0 || bk&wm != 0 || bk&wk != 0 || wm&wk != 0 {
		return nil, fmt.Errorf("%w: overlapping piece sets", ErrInvalidFEN)
	}
	if turn != SideBlack && turn != SideWhite {
		return nil, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}
	b := &Board{bm: bm, bk: bk, wm: wm, wk: wk, turn: turn}
	b.key, b.lock = b.AbsoluteHash()
	return b, nil
}

func (b *Board) BlackMen() Bitmap   { return b.bm }
func (b *Board) BlackKings() Bitmap { return b.bk }
func (b *Board) WhiteMen() Bitmap   { return b.wm }
func (b *Board) WhiteKings() Bitmap { return b.wk }
func (b *Board) Occupied() Bitmap   { return b.bm | b.bk | b.wm | b.wk }
func (b *Board) Free() Bitmap       { return ^b.Occupied() }
func (b *Board) Turn() Side         { return b.turn }

func (b *Board) Men(s Side) Bitmap {
	if s == SideBlack {
		return b.bm
	}
	return b.wm
}

func (b *Board) Kings(s Side) Bitmap {
	if s == SideBlack {
		return b.bk
	}
	return b.wk
}

func (b *Board) Pieces(s Side) Bitmap {
	if s == SideBlack {
		return b.bm | b.bk
	}
	return b.wm | b.wk
}

// PieceCounts returns the number of black men, black kings, white men and white kings.
func (b *Board) PieceCounts() (int, int, int, int) {
	return b.bm.BitCount(), b.bk.BitCount(), b.wm.BitCount(), b.wk.BitCount()
}

func (b *Board) Contains(p position.Pos) (Side, Piece) {
	cell := Cell(p)
	switch {
	case b.bm&cell != 0:
		return SideBlack, PieceMan
	case b.bk&cell != 0:
		return SideBlack, PieceKing
	case b.wm&cell != 0:
		return SideWhite, PieceMan
	case b.wk&cell != 0:
		return SideWhite, PieceKing
	default:
		return SideUnknown, PieceUnknown
	}
}

// Toggle flips the piece sets by the move's toggles, leaving hash and turn untouched.
func (b *Board) Toggle(mv Move) {
	b.bm ^= mv.BM
	b.bk ^= mv.BK
	b.wm ^= mv.WM
	b.wk ^= mv.WK
}

// Apply plays mv for the side to move. Applying the same move again undoes it.
func (b *Board) Apply(mv Move) {
	b.Toggle(mv)
	b.UpdateHash(mv)
	b.turn = b.turn.Opposite()
}

func (b *Board) SetTurn(s Side) {
	b.turn = s
}

func (b *Board) Equals(o *Board) bool {
	return b.bm == o.bm && b.bk == o.bk && b.wm == o.wm && b.wk == o.wk && b.turn == o.turn
}

// SamePieces reports whether both boards hold the same piece sets, regardless of turn.
func (b *Board) SamePieces(o *Board) bool {
	return b.bm == o.bm && b.bk == o.bk && b.wm == o.wm && b.wk == o.wk
}

// Reversed returns the board seen from the other side: squares mirrored and colours swapped.
func (b *Board) Reversed() *Board {
	r := &Board{
		bm:   b.wm.Reverse(),
		bk:   b.wk.Reverse(),
		wm:   b.bm.Reverse(),
		wk:   b.bk.Reverse(),
		turn: b.turn.Opposite(),
	}
	r.key, r.lock = r.AbsoluteHash()
	return r
}

func (b *Board) Clone() *Board {
	bb := *b
	return &bb
}

func (b *Board) State() State {
	if b.Pieces(b.turn) == 0 || !b.HasMove(b.turn) {
		if b.turn == SideBlack {
			return StateWhiteWins
		}
		return StateBlackWins
	}
	return StateRunning
}

// ResolveMove finds the legal move going from one square to another for the side to move.
func (b *Board) ResolveMove(from, to position.Pos) (Move, error) {
	var ml MoveList
	if err := b.GenerateMoves(b.turn, &ml); err != nil {
		return Move{}, err
	}
	for _, mv := range ml.Moves() {
		if mv.From == from && mv.To == to {
			return mv, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %s-%s", ErrIllegalMove, from, to)
}

// ParseMove resolves a move written as "11-15", "15x24" or "15-24".
func (b *Board) ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, "-x")
	if sep < 0 {
		return Move{}, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}
	from, err := position.NewPosFromNotation(strings.TrimSpace(s[:sep]))
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	to, err := position.NewPosFromNotation(strings.TrimSpace(s[sep+1:]))
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	return b.ResolveMove(from, to)
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
	for y := position.Pos(0); y < position.Width; y++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < position.Width; x++ {
			sym := " "
			if p, ok := position.NewPosFromXY(x, y); ok {
				s, pc := b.Contains(p)
				sym = pc.Symbol(s)
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n   +---+---+---+---+---+---+---+---+\n")
	}
	_, _ = builder.WriteString(fmt.Sprintf("   %s to move", b.turn))
	return builder.String()
}

func (b *Board) Draw() string {
	builder := strings.Builder{}
	for y := position.Pos(0); y < position.Width; y++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %d ", y+1))
		for x := position.Pos(0); x < position.Width; x++ {
			p, ok := position.NewPosFromXY(x, y)
			if !ok {
				_, _ = builder.WriteString(colorLightCell.Sprint("   "))
				continue
			}
			s, pc := b.Contains(p)
			switch s {
			case SideBlack:
				_, _ = builder.WriteString(colorBlack.Sprintf(" %s ", pc.SymbolUnicode(s)))
			case SideWhite:
				_, _ = builder.WriteString(colorWhite.Sprintf(" %s ", pc.SymbolUnicode(s)))
			default:
				_, _ = builder.WriteString(colorDarkCell.Sprintf("%3s", p.Notation()))
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString(colorLabel.Sprintf("   %s to move", b.turn))
	return builder.String()
}
