package bench

import (
	"context"
	"fmt"
	"testing"

	"github.com/daystram/checkers/board"
)

func TestPerft(t *testing.T) {
	t.Parallel()

	tests := map[string][]struct {
		depth     int
		wantNodes uint64
		wantCap   uint64
		wantPro   uint64
	}{
		board.DefaultStartingPositionFEN: {
			{depth: 0, wantNodes: 1},
			{depth: 1, wantNodes: 7},
			{depth: 2, wantNodes: 49},
			{depth: 3, wantNodes: 302, wantCap: 11},
			{depth: 4, wantNodes: 1_469, wantCap: 169},
			{depth: 5, wantNodes: 7_361, wantCap: 880},
			{depth: 6, wantNodes: 36_768, wantCap: 4_290},
			{depth: 7, wantNodes: 179_740, wantCap: 22_320, wantPro: 7},
		},
		"W:WK18,22,25:B14,6,7,10,K27": {
			{depth: 1, wantNodes: 1, wantCap: 1},
			{depth: 2, wantNodes: 6},
			{depth: 3, wantNodes: 36, wantCap: 1},
			{depth: 4, wantNodes: 155, wantCap: 7, wantPro: 1},
			{depth: 5, wantNodes: 822, wantCap: 44},
		},
		"B:W13,14,22,23,K2:B5,6,9,K26": {
			{depth: 1, wantNodes: 4, wantCap: 4},
			{depth: 2, wantNodes: 9, wantCap: 2},
			{depth: 3, wantNodes: 21, wantCap: 8},
			{depth: 4, wantNodes: 43, wantCap: 12, wantPro: 1},
			{depth: 5, wantNodes: 137, wantCap: 22, wantPro: 14},
		},
	}

	for fen, constraints := range tests {
		fen := fen
		for _, tt := range constraints {
			tt := tt
			t.Run(fmt.Sprintf("perft(%d): %s", tt.depth, fen), func(t *testing.T) {
				t.Parallel()
				b, err := board.NewBoard(board.WithFEN(fen))
				if err != nil {
					t.Fatal("unexpected error:", err)
				}

				var c counters
				if _, err := runPerft(b, tt.depth, true, false, nil, &c); err != nil {
					t.Fatal("unexpected error:", err)
				}
				if c.nodes != tt.wantNodes {
					t.Errorf("unexpected nodes: got=%d want=%d", c.nodes, tt.wantNodes)
				}
				if c.cap != tt.wantCap {
					t.Errorf("unexpected cap: got=%d want=%d", c.cap, tt.wantCap)
				}
				if c.pro != tt.wantPro {
					t.Errorf("unexpected pro: got=%d want=%d", c.pro, tt.wantPro)
				}
			})
		}
	}
}

func TestPerftParallel(t *testing.T) {
	t.Parallel()
	out := make(chan string, 64)
	res, err := Perft(context.Background(), 6, board.DefaultStartingPositionFEN, true, true, out)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if res.Nodes != 36_768 || res.Captures != 4_290 {
		t.Errorf("got=(%d %d) want=(36768 4290)", res.Nodes, res.Captures)
	}
	// one line per root move plus the summary
	if got := len(out); got != 8 {
		t.Errorf("unexpected output lines: got=%d want=8", got)
	}
}

func TestPerftInvalidFEN(t *testing.T) {
	t.Parallel()
	if _, err := Perft(context.Background(), 1, "X:W1:B2", false, false, nil); err == nil {
		t.Error("expected error for an invalid position")
	}
}
