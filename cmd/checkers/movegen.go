package main

import (
	"fmt"
	"strconv"

	"github.com/daystram/checkers/board"
)

func movegen(fen string, draw bool) error {
	fmt.Println("============ movegen")
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Println("to move:", b.Turn())
	fmt.Println(b.Dump())
	fmt.Println(b.Draw())
	fmt.Println(b.State())

	var ml board.MoveList
	if err := b.GenerateMoves(b.Turn(), &ml); err != nil {
		return err
	}
	dumpMoves(&ml)

	if draw {
		for _, mv := range ml.Moves() {
			b.Apply(mv)
			fmt.Println(mv)
			fmt.Println(b.Draw())
			fmt.Println(b.FEN())
			b.Apply(mv)
		}
	}
	return nil
}

func dumpMoves(ml *board.MoveList) {
	width := len(strconv.Itoa(ml.Len()))
	for i, mv := range ml.Moves() {
		fmt.Printf("option %*d: [%s] %s %s => %s (cap=%v) (pro=%v) (score=%d)\n",
			width, i+1, mv.Notation(), mv.IsTurn, mv.From, mv.To, mv.IsCapture, mv.IsPromote, mv.Score)
	}
}
