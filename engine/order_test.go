package engine

import (
	"testing"

	"github.com/daystram/checkers/board"
)

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return b
}

func mustMove(t *testing.T, b *board.Board, notation string) board.Move {
	t.Helper()
	mv, err := b.ParseMove(notation)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return mv
}

func TestOrderQuiet(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		hash   string
		killer string
		want   []string
	}{
		{
			name:   "killer first",
			killer: "11-15",
			want:   []string{"11-15"},
		},
		{
			name:   "hash move before killer",
			hash:   "9-13",
			killer: "11-15",
			want:   []string{"9-13", "11-15"},
		},
		{
			name: "hash move alone",
			hash: "12-16",
			want: []string{"12-16"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, board.DefaultStartingPositionFEN)
			var hash, killer board.Bitmap
			if tt.hash != "" {
				hash = mustMove(t, b, tt.hash).Own(board.SideBlack)
			}
			if tt.killer != "" {
				killer = mustMove(t, b, tt.killer).Own(board.SideBlack)
			}

			var ml board.MoveList
			if err := b.GenerateQuiet(board.SideBlack, &ml); err != nil {
				t.Fatal("unexpected error:", err)
			}
			var h HistoryTable
			orderQuiet(b, board.SideBlack, &ml, &h, hash, killer)

			if ml.Len() != 7 {
				t.Fatalf("moves got=%d want=7", ml.Len())
			}
			for i, want := range tt.want {
				if got := ml.At(i).Notation(); got != want {
					t.Errorf("move %d got=%s want=%s", i, got, want)
				}
			}
			if !b.Equals(mustBoard(t, board.DefaultStartingPositionFEN)) {
				t.Error("ordering should leave the board untouched")
			}
		})
	}
}

func TestOrderQuietCaptureThreat(t *testing.T) {
	t.Parallel()
	// 15-18 walks into 22x15 while 15-19 is safe
	b := mustBoard(t, "B:W22,30:B15")
	var ml board.MoveList
	if err := b.GenerateQuiet(board.SideBlack, &ml); err != nil {
		t.Fatal("unexpected error:", err)
	}
	var h HistoryTable
	orderQuiet(b, board.SideBlack, &ml, &h, 0, 0)
	if got := ml.At(ml.Len() - 1).Notation(); got != "15-18" {
		t.Errorf("last move got=%s want=15-18", got)
	}
}

func TestHistoryTable(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	mv := mustMove(t, b, "11-15")

	var h HistoryTable
	for i := 0; i < historyMinStores; i++ {
		h.Record(mv, board.SideBlack)
	}
	if got := h.Score(mv.From, mv.To); got != 0 {
		t.Errorf("score below threshold got=%d want=0", got)
	}

	h.Record(mv, board.SideBlack)
	h.Record(board.Move{}, board.SideBlack)
	if got, want := h.Score(mv.From, mv.To), int32(historyWeight*101/102); got != want {
		t.Errorf("score got=%d want=%d", got, want)
	}
	if got := h.Stores(); got != 102 {
		t.Errorf("stores got=%d want=102", got)
	}

	h.Reset()
	if got := h.Stores(); got != 0 {
		t.Errorf("stores after reset got=%d want=0", got)
	}
}
