package engine

import (
	"testing"

	"github.com/daystram/checkers/board"
)

func TestTranspositionTableBounds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		value       int
		alpha, beta int
		depth       int
		side        board.Side
		want        int
		wantAlpha   int
		wantBeta    int
		wantOK      bool
		wantBest    board.Bitmap
	}{
		{
			name:  "exact value is used",
			value: 50, alpha: 0, beta: 100, depth: 30, side: board.SideBlack,
			want: 50, wantAlpha: 0, wantBeta: 100, wantOK: true, wantBest: 0x10,
		},
		{
			name:  "shallower entry only gives the move",
			value: 50, alpha: 0, beta: 100, depth: 40, side: board.SideBlack,
			want: 0, wantAlpha: 0, wantBeta: 100, wantOK: false, wantBest: 0x10,
		},
		{
			name:  "other side to move misses",
			value: 50, alpha: 0, beta: 100, depth: 30, side: board.SideWhite,
			want: 0, wantAlpha: 0, wantBeta: 100, wantOK: false, wantBest: 0,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tbl := NewTranspositionTable()
			tbl.Store(1, 9, 0, 50, 0, 100, 30, 0x10, board.SideBlack)
			got, gotAlpha, gotBeta, gotBest, gotOK := tbl.Lookup(1, 9, 0, tt.depth, tt.side, tt.alpha, tt.beta)
			if gotOK != tt.wantOK {
				t.Fatalf("ok got=%v want=%v", gotOK, tt.wantOK)
			}
			if got != tt.want || gotAlpha != tt.wantAlpha || gotBeta != tt.wantBeta {
				t.Errorf("got=(%d %d %d) want=(%d %d %d)", got, gotAlpha, gotBeta, tt.want, tt.wantAlpha, tt.wantBeta)
			}
			if gotBest != tt.wantBest {
				t.Errorf("best got=%#x want=%#x", gotBest, tt.wantBest)
			}
		})
	}
}

func TestTranspositionTableWindow(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		stored      int
		alpha, beta int
		want        int
		wantAlpha   int
		wantBeta    int
		wantOK      bool
	}{
		{
			name:   "lower bound above beta cuts",
			stored: 120, alpha: 0, beta: 110,
			want: 120, wantAlpha: 0, wantBeta: 110, wantOK: true,
		},
		{
			name:   "lower bound raises alpha",
			stored: 120, alpha: 0, beta: 200,
			want: 0, wantAlpha: 120, wantBeta: 200, wantOK: false,
		},
		{
			name:   "upper bound below alpha cuts",
			stored: -10, alpha: 0, beta: 100,
			want: -10, wantAlpha: 0, wantBeta: 100, wantOK: true,
		},
		{
			name:   "upper bound lowers beta",
			stored: -10, alpha: -50, beta: 100,
			want: 0, wantAlpha: -50, wantBeta: -10, wantOK: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tbl := NewTranspositionTable()
			// stored with the window [0, 100]
			tbl.Store(3, 7, 0, tt.stored, 0, 100, 20, 0, board.SideWhite)
			got, gotAlpha, gotBeta, _, gotOK := tbl.Lookup(3, 7, 0, 20, board.SideWhite, tt.alpha, tt.beta)
			if gotOK != tt.wantOK {
				t.Fatalf("ok got=%v want=%v", gotOK, tt.wantOK)
			}
			if got != tt.want || gotAlpha != tt.wantAlpha || gotBeta != tt.wantBeta {
				t.Errorf("got=(%d %d %d) want=(%d %d %d)", got, gotAlpha, gotBeta, tt.want, tt.wantAlpha, tt.wantBeta)
			}
		})
	}
}

func TestTranspositionTableDeepReplacement(t *testing.T) {
	t.Parallel()
	tbl := NewTranspositionTable()
	found := func(lock uint32) bool {
		_, _, _, _, ok := tbl.Lookup(5, lock, 0, 0, board.SideBlack, -scoreInfinite, scoreInfinite)
		return ok
	}

	tbl.Store(5, 1, 0, 0, -1, 1, 10, 0, board.SideBlack)
	tbl.Store(5, 2, 0, 0, -1, 1, 20, 0, board.SideBlack)
	if !found(1) || !found(2) {
		t.Fatal("both bucket slots should be filled")
	}

	tbl.Store(5, 3, 0, 0, -1, 1, 5, 0, board.SideBlack)
	if found(3) {
		t.Error("shallower entry should not replace deeper ones")
	}

	tbl.Store(5, 3, 0, 0, -1, 1, 15, 0, board.SideBlack)
	if !found(3) {
		t.Error("entry should replace the shallowest slot")
	}
	if found(1) {
		t.Error("shallowest slot should have been replaced")
	}
	if !found(2) {
		t.Error("deepest slot should survive")
	}
}

func TestTranspositionTableShallowReplacement(t *testing.T) {
	t.Parallel()
	tbl := NewTranspositionTable()
	found := func(lock uint32) bool {
		_, _, _, _, ok := tbl.Lookup(8, lock, deepLevel, 0, board.SideBlack, -scoreInfinite, scoreInfinite)
		return ok
	}

	tbl.Store(8, 1, deepLevel, 0, -1, 1, 50, 0, board.SideBlack)
	tbl.Store(8, 2, deepLevel, 0, -1, 1, 30, 0, board.SideBlack)
	if !found(1) || found(2) {
		t.Error("shallow tier should keep the deeper entry")
	}
	tbl.Store(8, 2, deepLevel, 0, -1, 1, 50, 0, board.SideBlack)
	if found(1) || !found(2) {
		t.Error("shallow tier should overwrite an entry of equal depth")
	}
	// the deep tier is separate
	if _, _, _, _, ok := tbl.Lookup(8, 2, 0, 0, board.SideBlack, -scoreInfinite, scoreInfinite); ok {
		t.Error("deep tier should not see shallow entries")
	}
}

func TestTranspositionTableStats(t *testing.T) {
	t.Parallel()
	tbl := NewTranspositionTable()
	tbl.Store(1, 1, 0, 0, -1, 1, -10, 0, board.SideBlack)
	tbl.Store(1, 1, 0, 0, -1, 1, 10, 0, board.SideBlack)
	tbl.Lookup(1, 1, 0, 0, board.SideBlack, -1, 1)
	tbl.Lookup(2, 2, 0, 0, board.SideBlack, -1, 1)

	searches, hits, stores := tbl.Stats()
	if searches != 2 || hits != 1 || stores != 1 {
		t.Errorf("got=(%d %d %d) want=(2 1 1)", searches, hits, stores)
	}

	tbl.Clear()
	if _, _, _, _, ok := tbl.Lookup(1, 1, 0, 0, board.SideBlack, -1, 1); ok {
		t.Error("cleared table should miss")
	}
}
