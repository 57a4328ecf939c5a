package board

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/daystram/checkers/position"
)

// UnmarshalFEN parses a PDN FEN string such as "B:W21,22,K30:B1-4,K12" into b.
func UnmarshalFEN(fen string, b *Board) error {
	if b == nil {
		return fmt.Errorf("invalid board")
	}
	segments := strings.Split(strings.TrimSuffix(strings.TrimSpace(fen), "."), ":")
	if len(segments) != 3 {
		return fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	switch strings.ToUpper(segments[0]) {
	case "W":
		b.turn = SideWhite
	case "B":
		b.turn = SideBlack
	default:
		return fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	var seen [2]bool
	for _, seg := range segments[1:] {
		if len(seg) == 0 {
			return fmt.Errorf("%w: empty piece list", ErrInvalidFEN)
		}
		var s Side
		switch seg[0] {
		case 'W', 'w':
			s = SideWhite
		case 'B', 'b':
			s = SideBlack
		default:
			return fmt.Errorf("%w: unknown colour '%s'", ErrInvalidFEN, string(seg[0]))
		}
		if seen[s-1] {
			return fmt.Errorf("%w: duplicate colour %s", ErrInvalidFEN, s)
		}
		seen[s-1] = true
		if err := unmarshalPieces(seg[1:], s, b); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalPieces(list string, s Side, b *Board) error {
	if list == "" {
		return nil
	}
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		p := PieceMan
		if strings.HasPrefix(tok, "K") || strings.HasPrefix(tok, "k") {
			p = PieceKing
			tok = tok[1:]
		}
		first, last := tok, tok
		if i := strings.IndexByte(tok, '-'); i > 0 {
			first, last = tok[:i], tok[i+1:]
		}
		lo, err := strconv.Atoi(first)
		if err != nil {
			return fmt.Errorf("%w: invalid square '%s'", ErrInvalidFEN, tok)
		}
		hi, err := strconv.Atoi(last)
		if err != nil || hi < lo {
			return fmt.Errorf("%w: invalid square '%s'", ErrInvalidFEN, tok)
		}
		for num := lo; num <= hi; num++ {
			pos, err := position.NewPosFromSquare(num)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
			}
			cell := Cell(pos)
			if b.Occupied()&cell != 0 {
				return fmt.Errorf("%w: square %d occupied twice", ErrInvalidFEN, num)
			}
			if p == PieceMan && cell&PromotionRank(s) != 0 {
				return fmt.Errorf("%w: uncrowned man on square %d", ErrInvalidFEN, num)
			}
			var mv Move
			mv.toggle(s, p, cell)
			b.Toggle(mv)
		}
	}
	return nil
}

// MarshalFEN writes b as a PDN FEN string, squares in ascending order.
func MarshalFEN(b *Board) (string, error) {
	if b == nil || (b.turn != SideBlack && b.turn != SideWhite) {
		return "", fmt.Errorf("invalid board")
	}
	builder := strings.Builder{}
	_, _ = builder.WriteString(b.turn.Symbol())
	for _, s := range []Side{SideWhite, SideBlack} {
		_, _ = builder.WriteRune(':')
		_, _ = builder.WriteString(s.Symbol())
		type square struct {
			num  int
			king bool
		}
		var squares []square
		for _, p := range b.Men(s).Positions() {
			squares = append(squares, square{num: p.Square()})
		}
		for _, p := range b.Kings(s).Positions() {
			squares = append(squares, square{num: p.Square(), king: true})
		}
		sort.Slice(squares, func(i, j int) bool { return squares[i].num < squares[j].num })
		for i, sq := range squares {
			if i > 0 {
				_, _ = builder.WriteRune(',')
			}
			if sq.king {
				_, _ = builder.WriteRune('K')
			}
			_, _ = builder.WriteString(strconv.Itoa(sq.num))
		}
	}
	return builder.String(), nil
}

func (b *Board) FEN() string {
	fen, _ := MarshalFEN(b)
	return fen
}
