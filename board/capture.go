package board

const (
	scoreCapturedMan   = 2
	scoreCapturedKing  = 3
	scoreCenterMan     = 1
	scoreCenterKing    = 2
	scorePromotion     = 2
	scoreCaptureForced = 128
)

var (
	blackManJumps = []jump{jumpLFJ2, jumpLFJ1, jumpRFJ2, jumpRFJ1}
	whiteManJumps = []jump{jumpLBJ1, jumpLBJ2, jumpRBJ1, jumpRBJ2}
	kingJumps     = allJumps[:]

	// continuations indexed by row parity of the landing square
	blackManContinuations = [2][]jump{{jumpLFJ1, jumpRFJ1}, {jumpLFJ2, jumpRFJ2}}
	whiteManContinuations = [2][]jump{{jumpLBJ1, jumpRBJ1}, {jumpLBJ2, jumpRBJ2}}
	kingContinuations     = [2][]jump{
		{jumpLFJ1, jumpRFJ1, jumpLBJ1, jumpRBJ1},
		{jumpLFJ2, jumpRFJ2, jumpLBJ2, jumpRBJ2},
	}
)

// captureGenerator walks capture chains on a private copy of the board,
// toggling each partial jump in while it searches for continuations.
type captureGenerator struct {
	b     Board
	side  Side
	piece Piece
	from  Bitmap
	ml    *MoveList
	err   error
}

// GenerateCaptures fills ml with every maximal capture sequence of s, scored and
// sorted best first. The move whose own toggles equal forceFirst is boosted.
func (b *Board) GenerateCaptures(s Side, forceFirst Bitmap, ml *MoveList) error {
	ml.Reset()
	g := captureGenerator{b: *b, side: s, ml: ml}
	if s == SideBlack {
		g.start(b.bm, PieceMan, blackManJumps)
		g.start(b.bk, PieceKing, kingJumps)
	} else {
		g.start(b.wm, PieceMan, whiteManJumps)
		g.start(b.wk, PieceKing, kingJumps)
	}
	if g.err != nil {
		return g.err
	}
	if ml.Len() > 1 {
		if i := ml.Find(s, forceFirst); i >= 0 {
			ml.moves[i].Score += scoreCaptureForced
		}
		ml.Sort()
	}
	return nil
}

func (g *captureGenerator) start(pieces Bitmap, p Piece, jumps []jump) {
	if pieces == 0 {
		return
	}
	g.piece = p
	for _, j := range jumps {
		m := g.targets(pieces, j)
		for m != 0 && g.err == nil {
			to := m.PopLS1B()
			g.from = shift(to, -j.land)
			partial, promoted := g.jump(g.from, to, j)
			g.b.Toggle(partial)
			g.extend(partial, to, promoted)
			g.b.Toggle(partial)
		}
	}
}

func (g *captureGenerator) targets(from Bitmap, j jump) Bitmap {
	opponent := g.b.Pieces(g.side.Opposite())
	return shift(shift(from&j.mask, j.over)&opponent, j.land-j.over) & g.b.Free()
}

// jump builds the toggles of a single jump from one square to another.
func (g *captureGenerator) jump(from, to Bitmap, j jump) (Move, bool) {
	var mv Move
	promoted := false
	switch {
	case g.piece == PieceKing:
		mv.toggle(g.side, PieceKing, from|to)
	case to&PromotionRank(g.side) != 0:
		mv.toggle(g.side, PieceMan, from)
		mv.toggle(g.side, PieceKing, to)
		promoted = true
	default:
		mv.toggle(g.side, PieceMan, from|to)
	}
	over := shift(from, j.over)
	opponent := g.side.Opposite()
	mv.toggle(opponent, PieceMan, over&g.b.Men(opponent))
	mv.toggle(opponent, PieceKing, over&g.b.Kings(opponent))
	return mv, promoted
}

func (g *captureGenerator) extend(partial Move, sq Bitmap, promoted bool) {
	found := false
	if !promoted {
		for _, j := range g.continuations(sq) {
			m := g.targets(sq, j)
			if m == 0 {
				continue
			}
			next, nextPromoted := g.jump(sq, m, j)
			g.b.Toggle(next)
			g.extend(combine(partial, next), m, nextPromoted)
			g.b.Toggle(next)
			found = true
		}
	}
	if !found {
		g.emit(partial, sq, promoted)
	}
}

func (g *captureGenerator) continuations(sq Bitmap) []jump {
	parity := 0
	if sq&MaskOddRows != 0 {
		parity = 1
	}
	switch {
	case g.piece == PieceKing:
		return kingContinuations[parity]
	case g.side == SideBlack:
		return blackManContinuations[parity]
	default:
		return whiteManContinuations[parity]
	}
}

func (g *captureGenerator) emit(mv Move, landing Bitmap, promoted bool) {
	if g.err != nil {
		return
	}
	mv.From = g.from.LS1B()
	mv.To = landing.LS1B()
	mv.IsTurn = g.side
	mv.IsCapture = true
	mv.IsPromote = promoted

	men, kings := mv.WM, mv.WK
	if g.side == SideWhite {
		men, kings = mv.BM, mv.BK
	}
	mv.Score = int32(scoreCapturedMan*men.BitCount() + scoreCapturedKing*kings.BitCount())
	if landing&MaskCenter != 0 {
		if g.piece == PieceKing {
			mv.Score += scoreCenterKing
		} else {
			mv.Score += scoreCenterMan
		}
	}
	if promoted {
		mv.Score += scorePromotion
	}
	g.err = g.ml.Push(mv)
}

func combine(a, b Move) Move {
	return Move{BM: a.BM ^ b.BM, BK: a.BK ^ b.BK, WM: a.WM ^ b.WM, WK: a.WK ^ b.WK}
}
