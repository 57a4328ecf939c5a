package position

import (
	"errors"
	"strconv"
)

const (
	// MaxSquares is the number of playable squares on the board.
	MaxSquares Pos = 32
	// SquaresPerRow is the number of playable squares on each row.
	SquaresPerRow Pos = 4
	// Width is the number of cells per row on the drawn board.
	Width Pos = 8
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")

	// squareNumber maps bit index to the standard 1-32 square number.
	squareNumber = [MaxSquares]int{
		4, 3, 2, 1, 8, 7, 6, 5,
		12, 11, 10, 9, 16, 15, 14, 13,
		20, 19, 18, 17, 24, 23, 22, 21,
		28, 27, 26, 25, 32, 31, 30, 29,
	}
)

// Pos is a bit index of the board, 0 being the rightmost square of Black's back rank.
type Pos int8

func NewPosFromNotation(n string) (Pos, error) {
	num, err := strconv.Atoi(n)
	if err != nil {
		return 0, ErrInvalidNotation
	}
	return NewPosFromSquare(num)
}

func NewPosFromSquare(num int) (Pos, error) {
	if num < 1 || num > int(MaxSquares) {
		return 0, ErrInvalidNotation
	}
	row, col := Pos(num-1)/SquaresPerRow, Pos(num-1)%SquaresPerRow
	return row*SquaresPerRow + (SquaresPerRow - 1 - col), nil
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) Notation() string {
	if !p.Valid() {
		return ""
	}
	return strconv.Itoa(squareNumber[p])
}

func (p Pos) Square() int {
	if !p.Valid() {
		return 0
	}
	return squareNumber[p]
}

func (p Pos) Valid() bool {
	return p >= 0 && p < MaxSquares
}

// Y returns the row counted from Black's back rank.
func (p Pos) Y() Pos {
	return p / SquaresPerRow
}

// X returns the column on the 8x8 drawn board, counted from the left as seen with Black on top.
func (p Pos) X() Pos {
	col := SquaresPerRow - 1 - p%SquaresPerRow
	if p.Y()%2 == 0 {
		return 2*col + 1
	}
	return 2 * col
}

// NewPosFromXY returns the playable square at the given drawn cell, if any.
func NewPosFromXY(x, y Pos) (Pos, bool) {
	if x < 0 || x >= Width || y < 0 || y >= Width || (x+y)%2 == 0 {
		return 0, false
	}
	return y*SquaresPerRow + (SquaresPerRow - 1 - x/2), true
}
