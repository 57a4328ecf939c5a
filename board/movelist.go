package board

import (
	"errors"

	"golang.org/x/exp/slices"
)

// MaxMoves bounds the number of moves a single position can produce.
const MaxMoves = 64

var (
	ErrMoveListOverflow = errors.New("move list overflow")
)

type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

func (l *MoveList) Push(mv Move) error {
	if l.n >= MaxMoves {
		return ErrMoveListOverflow
	}
	l.moves[l.n] = mv
	l.n++
	return nil
}

func (l *MoveList) Len() int {
	return l.n
}

func (l *MoveList) At(i int) Move {
	return l.moves[i]
}

func (l *MoveList) Set(i int, mv Move) {
	l.moves[i] = mv
}

// Moves returns a view of the stored moves; it is invalidated by Reset.
func (l *MoveList) Moves() []Move {
	return l.moves[:l.n]
}

func (l *MoveList) Reset() {
	l.n = 0
}

// Sort orders moves by descending score, keeping generation order among equals.
func (l *MoveList) Sort() {
	slices.SortStableFunc(l.moves[:l.n], func(a, b Move) bool {
		return a.Score > b.Score
	})
}

// MoveToFront moves the i-th move to the front, preserving the order of the others.
func (l *MoveList) MoveToFront(i int) {
	if i <= 0 || i >= l.n {
		return
	}
	mv := l.moves[i]
	copy(l.moves[1:i+1], l.moves[:i])
	l.moves[0] = mv
}

// Find returns the index of the first move whose own toggles match bits.
func (l *MoveList) Find(s Side, bits Bitmap) int {
	if bits == 0 {
		return -1
	}
	for i := 0; i < l.n; i++ {
		if l.moves[i].Own(s) == bits {
			return i
		}
	}
	return -1
}
