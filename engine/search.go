package engine

import (
	"github.com/daystram/checkers/board"
	"github.com/daystram/checkers/egdb"
)

const (
	// depths are counted in tenths of a ply
	fullPly = 10

	aspirationWindow = 10
	singleExtension  = 5
	truncationDepth  = 15
	truncationValue  = 110
	quiescenceLevel  = 130
	etcDepth         = 20
	endgamePieces    = 8

	historyOffset = 10

	scoreInfinite = 10000
	scoreDecisive = 4500
)

// linePosition is the piece placement of a position on the search path.
type linePosition struct {
	bm, bk, wm, wk board.Bitmap
}

// lineSentinel never matches a real position.
var lineSentinel = linePosition{bm: board.MaskAll, wm: board.MaskAll}

func lineOf(b *board.Board) linePosition {
	return linePosition{bm: b.BlackMen(), bk: b.BlackKings(), wm: b.WhiteMen(), wk: b.WhiteKings()}
}

// prepareLine seeds the repetition history with the last positions of the game.
func (e *Engine) prepareLine(b *board.Board) {
	e.recordGame(b)
	for i := 0; i < historyOffset; i++ {
		e.line[i] = lineSentinel
	}
	for i, k := len(e.game)-1, historyOffset; i >= 0 && k >= 0; i, k = i-1, k-1 {
		e.line[k] = e.game[i]
	}
}

// recordGame appends b to the played positions unless it is already the last one.
func (e *Engine) recordGame(b *board.Board) {
	cur := lineOf(b)
	if n := len(e.game); n > 0 && e.game[n-1] == cur {
		return
	}
	e.game = append(e.game, cur)
	if n := len(e.game); n > historyOffset+1 {
		e.game = append(e.game[:0], e.game[n-historyOffset-1:]...)
	}
}

// isRepetition looks back two plies at a time until a man has moved.
func (e *Engine) isRepetition(b *board.Board) bool {
	cur := lineOf(b)
	for i := e.ply + historyOffset - 2; i >= 0; i -= 2 {
		p := e.line[i]
		if p.bm != cur.bm || p.wm != cur.wm {
			return false
		}
		if p == cur {
			return true
		}
	}
	return false
}

// material is the piece balance for s, favouring exchanges when ahead.
func material(nbm, nbk, nwm, nwk int, s board.Side) int {
	v1 := scoreMan*nbm + scoreKing*nbk
	v2 := scoreMan*nwm + scoreKing*nwk
	v := v1 - v2
	if v1+v2 > 0 {
		v += 250 * (v1 - v2) / (v1 + v2)
	}
	return sideScore(s, v)
}

func (e *Engine) store(b *board.Board, value, alpha, beta, depth int, best board.Move) {
	if depth < 0 {
		return
	}
	s := b.Turn()
	e.history.Record(best, s)
	key, lock := b.Hash()
	e.tt.Store(key, lock, e.ply, value, alpha, beta, depth, best.Own(s), s)
}

// searchRoot searches every root move, keeping the best one at the front of
// the list for the next iteration.
func (e *Engine) searchRoot(b *board.Board, ml *board.MoveList, depth, alpha, beta int) (board.Move, int) {
	if e.aborted || e.clock.Poll() {
		e.aborted = true
		return ml.At(0), 0
	}
	e.nodes++
	s := b.Turn()
	alphaIn, betaIn := alpha, beta

	key, lock := b.Hash()
	_, alpha, beta, _, _ = e.tt.Lookup(key, lock, e.ply, depth, s, alpha, beta)

	best, bestIndex := ml.At(0), 0
	var killer board.Bitmap
	for i := 0; i < ml.Len(); i++ {
		mv := ml.At(i)
		b.Apply(mv)
		e.ply++
		e.line[e.ply+historyOffset] = lineOf(b)
		value := -e.negamax(b, depth-fullPly, -beta, -alpha, &killer, 0)
		e.ply--
		b.Apply(mv)
		if e.aborted {
			return ml.At(0), 0
		}

		if value >= beta {
			best, bestIndex, alpha = mv, i, value
			break
		}
		if value > alpha {
			best, bestIndex, alpha = mv, i, value
		}
	}
	e.store(b, alpha, alphaIn, betaIn, depth, best)
	ml.MoveToFront(bestIndex)
	return best, alpha
}

// negamax returns the score of b for the side to move. killer carries the
// best move found at this node back to the parent, which hands it to the
// next sibling. truncation is the depth cut while material was outside the window.
func (e *Engine) negamax(b *board.Board, depth, alpha, beta int, killer *board.Bitmap, truncation int) int {
	if e.nodes&pollMask == 0 && e.clock.Poll() {
		e.aborted = true
	}
	if e.aborted {
		return 0
	}
	s := b.Turn()
	if e.ply > MaxDepth {
		return e.evaluate(b, s, alpha, beta)
	}
	e.nodes++
	alphaIn, betaIn := alpha, beta

	var hashMove board.Bitmap
	if depth > 0 {
		var value int
		var ok bool
		key, lock := b.Hash()
		value, alpha, beta, hashMove, ok = e.tt.Lookup(key, lock, e.ply, depth, s, alpha, beta)
		if ok {
			return value
		}
	}

	if b.BlackKings() != 0 && b.WhiteKings() != 0 && e.isRepetition(b) {
		return 0
	}

	ml := &e.moves[e.ply]
	if err := b.GenerateCaptures(s, hashMove, ml); err != nil {
		e.err, e.aborted = err, true
		return 0
	}
	captures := ml.Len()

	nbm, nbk, nwm, nwk := b.PieceCounts()
	if e.db != nil && nbm+nbk+nwm+nwk <= e.dbMaxPieces && captures == 0 &&
		nbm+nbk > 0 && nwm+nwk > 0 && !b.HasCapture(s.Opposite()) {
		e.dbLookups++
		switch e.db.Classify(b, s) {
		case egdb.Draw:
			return 0
		case egdb.Win:
			if v := winEval(b, s); v >= beta {
				return v
			}
		}
	}

	v1 := material(nbm, nbk, nwm, nwk, s)
	if v1 < alpha-truncationValue || v1 > beta+truncationValue {
		truncation += e.truncation
		depth -= e.truncation
	} else {
		depth += truncation
		truncation = 0
	}

	if captures == 0 {
		if depth <= 0 {
			if e.ply > e.maxPly {
				e.maxPly = e.ply
			}
			// quiet leaf unless the opponent threatens a capture close to the window
			if !b.HasCapture(s.Opposite()) || v1 > beta+quiescenceLevel || v1 < alpha-quiescenceLevel {
				return e.evaluate(b, s, alpha, beta)
			}
		}
		if err := b.GenerateQuiet(s, ml); err != nil {
			e.err, e.aborted = err, true
			return 0
		}
		orderQuiet(b, s, ml, &e.history, hashMove, *killer)
	}

	n := ml.Len()
	if n == 0 {
		return -ScoreWin + e.ply
	}
	if n == 1 {
		depth += singleExtension
	}

	// enhanced transposition cutoff
	if depth > etcDepth {
		for i := 0; i < n; i++ {
			mv := ml.At(i)
			b.Apply(mv)
			key, lock := b.Hash()
			value, _, _, _, ok := e.tt.Lookup(key, lock, e.ply+1, depth-fullPly, s.Opposite(), -beta, -alpha)
			b.Apply(mv)
			if ok && -value >= beta {
				return beta
			}
		}
	}

	best := ml.At(0)
	var childKiller board.Bitmap
	for i := 0; i < n; i++ {
		mv := ml.At(i)
		b.Apply(mv)
		e.ply++
		e.line[e.ply+historyOffset] = lineOf(b)
		value := -e.negamax(b, depth-fullPly, -beta, -alpha, &childKiller, truncation)
		e.ply--
		b.Apply(mv)
		if e.aborted {
			return 0
		}

		if value >= beta {
			alpha, best = value, mv
			break
		}
		if value > alpha {
			alpha, best = value, mv
		}
	}
	e.store(b, alpha, alphaIn, betaIn, depth, best)
	*killer = best.Own(s)
	return alpha
}
