package board

var (
	blackManSteps = []step{stepLF1, stepLF2, stepRF1, stepRF2}
	whiteManSteps = []step{stepLB2, stepLB1, stepRB2, stepRB1}
	kingSteps     = []step{stepLF1, stepLF2, stepRF1, stepRF2, stepLB1, stepLB2, stepRB1, stepRB2}
)

// PromotionRank returns the row on which men of the given side are crowned.
func PromotionRank(s Side) Bitmap {
	if s == SideBlack {
		return MaskWhiteBackRank
	}
	return MaskBlackBackRank
}

func (m *Move) toggle(s Side, p Piece, bm Bitmap) {
	switch {
	case s == SideBlack && p == PieceMan:
		m.BM ^= bm
	case s == SideBlack && p == PieceKing:
		m.BK ^= bm
	case s == SideWhite && p == PieceMan:
		m.WM ^= bm
	case s == SideWhite && p == PieceKing:
		m.WK ^= bm
	}
}

// GenerateMoves fills ml with the legal moves of s: captures when any exist, quiet moves otherwise.
func (b *Board) GenerateMoves(s Side, ml *MoveList) error {
	if err := b.GenerateCaptures(s, 0, ml); err != nil {
		return err
	}
	if ml.Len() > 0 {
		return nil
	}
	return b.GenerateQuiet(s, ml)
}

// GenerateQuiet fills ml with the non-capturing moves of s in generation order:
// kings before men, then by direction, then by landing square.
func (b *Board) GenerateQuiet(s Side, ml *MoveList) error {
	ml.Reset()
	free := b.Free()
	if s == SideBlack {
		if err := b.generateSteps(s, b.bk, PieceKing, kingSteps, free, ml); err != nil {
			return err
		}
		return b.generateSteps(s, b.bm, PieceMan, blackManSteps, free, ml)
	}
	if err := b.generateSteps(s, b.wk, PieceKing, kingSteps, free, ml); err != nil {
		return err
	}
	return b.generateSteps(s, b.wm, PieceMan, whiteManSteps, free, ml)
}

func (b *Board) generateSteps(s Side, pieces Bitmap, p Piece, steps []step, free Bitmap, ml *MoveList) error {
	if pieces == 0 {
		return nil
	}
	promotion := PromotionRank(s)
	for _, st := range steps {
		m := shift(pieces&st.mask, st.shift) & free
		for m != 0 {
			to := m.PopLS1B()
			from := shift(to, -st.shift)
			mv := Move{From: from.LS1B(), To: to.LS1B(), IsTurn: s}
			if p == PieceMan && to&promotion != 0 {
				mv.toggle(s, PieceMan, from)
				mv.toggle(s, PieceKing, to)
				mv.IsPromote = true
			} else {
				mv.toggle(s, p, from|to)
			}
			if err := ml.Push(mv); err != nil {
				return err
			}
		}
	}
	return nil
}

// HasCapture reports whether s has at least one capture available.
func (b *Board) HasCapture(s Side) bool {
	black, white := b.bm|b.bk, b.wm|b.wk
	free := ^(black | white)
	var m Bitmap
	if s == SideBlack {
		m = ((((black & MaskLFJ2) << 4) & white) << 3) |
			((((black & MaskLFJ1) << 3) & white) << 4) |
			((((black & MaskRFJ1) << 4) & white) << 5) |
			((((black & MaskRFJ2) << 5) & white) << 4)
		if b.bk != 0 {
			m |= ((((b.bk & MaskLBJ1) >> 5) & white) >> 4) |
				((((b.bk & MaskLBJ2) >> 4) & white) >> 5) |
				((((b.bk & MaskRBJ1) >> 4) & white) >> 3) |
				((((b.bk & MaskRBJ2) >> 3) & white) >> 4)
		}
		return m&free != 0
	}
	m = ((((white & MaskLBJ1) >> 5) & black) >> 4) |
		((((white & MaskLBJ2) >> 4) & black) >> 5) |
		((((white & MaskRBJ1) >> 4) & black) >> 3) |
		((((white & MaskRBJ2) >> 3) & black) >> 4)
	if b.wk != 0 {
		m |= ((((b.wk & MaskLFJ2) << 4) & black) << 3) |
			((((b.wk & MaskLFJ1) << 3) & black) << 4) |
			((((b.wk & MaskRFJ1) << 4) & black) << 5) |
			((((b.wk & MaskRFJ2) << 5) & black) << 4)
	}
	return m&free != 0
}

// HasMove reports whether s has any legal move.
func (b *Board) HasMove(s Side) bool {
	if b.HasCapture(s) {
		return true
	}
	free := b.Free()
	steps := blackManSteps
	if s == SideWhite {
		steps = whiteManSteps
	}
	men, kings := b.Men(s), b.Kings(s)
	for _, st := range steps {
		if shift(men&st.mask, st.shift)&free != 0 {
			return true
		}
	}
	for _, st := range kingSteps {
		if shift(kings&st.mask, st.shift)&free != 0 {
			return true
		}
	}
	return false
}

// Targets returns the squares the pieces of s could step to, ignoring occupancy.
func (b *Board) Targets(s Side) Bitmap {
	var t Bitmap
	forward := forwardSteps[:]
	backward := backwardSteps[:]
	if s == SideWhite {
		forward, backward = backward, forward
	}
	for _, st := range forward {
		t |= shift(b.Pieces(s)&st.mask, st.shift)
	}
	for _, st := range backward {
		t |= shift(b.Kings(s)&st.mask, st.shift)
	}
	return t
}
