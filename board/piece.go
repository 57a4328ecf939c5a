package board

type Piece uint8

const (
	PieceUnknown Piece = iota
	PieceMan
	PieceKing
)

func (p Piece) String() string {
	return p.Name()
}

func (p Piece) Name() string {
	switch p {
	case PieceMan:
		return "Man"
	case PieceKing:
		return "King"
	default:
		return ""
	}
}

// Symbol returns the single letter used in board dumps, capitalised for kings.
func (p Piece) Symbol(s Side) string {
	var sym rune
	switch s {
	case SideBlack:
		sym = 'b'
	case SideWhite:
		sym = 'w'
	default:
		return " "
	}
	if p == PieceKing {
		sym -= 'a' - 'A'
	}
	return string(sym)
}

func (p Piece) SymbolUnicode(s Side) string {
	switch {
	case s == SideBlack && p == PieceMan:
		return "⛂"
	case s == SideBlack && p == PieceKing:
		return "⛃"
	case s == SideWhite && p == PieceMan:
		return "⛀"
	case s == SideWhite && p == PieceKing:
		return "⛁"
	default:
		return " "
	}
}
