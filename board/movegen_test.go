package board

import (
	"errors"
	"testing"

	"github.com/daystram/checkers/position"
)

func mustBoard(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := NewBoard(WithFEN(fen))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return b
}

func notations(ml *MoveList) []string {
	var ns []string
	for _, mv := range ml.Moves() {
		ns = append(ns, mv.Notation())
	}
	return ns
}

func TestGenerateMoves(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{
			name: "starting position",
			fen:  DefaultStartingPositionFEN,
			want: []string{"11-16", "10-15", "9-14", "12-16", "11-15", "10-14", "9-13"},
		},
		{
			name: "double jump",
			fen:  "B:W16,24:B11",
			want: []string{"11x27"},
		},
		{
			name: "capture is mandatory",
			fen:  "B:W16,32:B11,5",
			want: []string{"11x20"},
		},
		{
			name: "man promotes by capture",
			fen:  "B:W27:B23",
			want: []string{"23x32"},
		},
		{
			name: "man promotes by step",
			fen:  "B:W5:B25",
			want: []string{"25-29", "25-30"},
		},
		{
			name: "white man moves backwards",
			fen:  "W:W30:B1",
			want: []string{"30-26", "30-25"},
		},
		{
			name: "king moves both ways",
			fen:  "B:W32:BK15",
			want: []string{"15-19", "15-11", "15-18", "15-10"},
		},
		{
			name: "blocked",
			fen:  "B:W8,11:B4",
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)

			var ml MoveList
			if err := b.GenerateMoves(b.Turn(), &ml); err != nil {
				t.Fatal("unexpected error:", err)
			}
			got := notations(&ml)
			if !equalUnordered(got, tt.want) {
				t.Errorf("unexpected moves: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func equalUnordered(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	count := make(map[string]int)
	for _, s := range a {
		count[s]++
	}
	for _, s := range b {
		count[s]--
	}
	for _, c := range count {
		if c != 0 {
			return false
		}
	}
	return true
}

func TestGenerateCapturesToggles(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "B:W16,24:B11")

	var ml MoveList
	if err := b.GenerateCaptures(SideBlack, 0, &ml); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if ml.Len() != 1 {
		t.Fatalf("unexpected move count: got=%d want=%d", ml.Len(), 1)
	}
	mv := ml.At(0)
	if want := NewBitmap(9, 25); mv.BM != want {
		t.Errorf("unexpected black men toggles: got=%08x want=%08x", mv.BM, want)
	}
	if want := NewBitmap(12, 20); mv.WM != want {
		t.Errorf("unexpected white men toggles: got=%08x want=%08x", mv.WM, want)
	}
	if mv.BK != 0 || mv.WK != 0 {
		t.Errorf("unexpected king toggles: bk=%08x wk=%08x", mv.BK, mv.WK)
	}
	if mv.Score != 2*scoreCapturedMan {
		t.Errorf("unexpected score: got=%d want=%d", mv.Score, 2*scoreCapturedMan)
	}

	b.Apply(mv)
	if b.WhiteMen() != 0 || b.BlackMen() != NewBitmap(25) {
		t.Errorf("unexpected board after capture:\n%s", b.Dump())
	}
	if b.Turn() != SideWhite {
		t.Errorf("unexpected turn: got=%s want=%s", b.Turn(), SideWhite)
	}
}

func TestGenerateCapturesPromotion(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "B:W27:B23")

	var ml MoveList
	if err := b.GenerateCaptures(SideBlack, 0, &ml); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if ml.Len() != 1 {
		t.Fatalf("unexpected move count: got=%d want=%d", ml.Len(), 1)
	}
	mv := ml.At(0)
	if !mv.IsPromote {
		t.Error("expected promotion")
	}
	if mv.BM != NewBitmap(21) || mv.BK != NewBitmap(28) || mv.WM != NewBitmap(25) {
		t.Errorf("unexpected toggles: bm=%08x bk=%08x wm=%08x", mv.BM, mv.BK, mv.WM)
	}
	if want := int32(scoreCapturedMan + scorePromotion); mv.Score != want {
		t.Errorf("unexpected score: got=%d want=%d", mv.Score, want)
	}
}

func TestGenerateCapturesForceFirst(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "B:W15,16:B11")

	var ml MoveList
	if err := b.GenerateCaptures(SideBlack, 0, &ml); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if ml.Len() != 2 {
		t.Fatalf("unexpected move count: got=%d want=%d", ml.Len(), 2)
	}
	last := ml.At(1)

	if err := b.GenerateCaptures(SideBlack, last.Own(SideBlack), &ml); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := ml.At(0); !got.Equals(last) {
		t.Errorf("unexpected first move: got=%s want=%s", got, last)
	}
}

func TestHasCapture(t *testing.T) {
	t.Parallel()
	r := NewPseudoRand()
	r.Seed(7)

	for game := 0; game < 50; game++ {
		b := mustBoard(t, DefaultStartingPositionFEN)
		for ply := 0; ply < 150 && b.State().IsRunning(); ply++ {
			var captures, moves MoveList
			if err := b.GenerateCaptures(b.Turn(), 0, &captures); err != nil {
				t.Fatal("unexpected error:", err)
			}
			if got, want := b.HasCapture(b.Turn()), captures.Len() > 0; got != want {
				t.Fatalf("unexpected capture detection: got=%v want=%v\n%s", got, want, b.Dump())
			}
			if err := b.GenerateMoves(b.Turn(), &moves); err != nil {
				t.Fatal("unexpected error:", err)
			}
			if moves.Len() == 0 {
				t.Fatalf("running position without moves:\n%s", b.Dump())
			}

			mv := moves.At(r.Intn(moves.Len()))
			before := *b
			b.Apply(mv)
			key, lock := b.AbsoluteHash()
			if gotKey, gotLock := b.Hash(); gotKey != key || gotLock != lock {
				t.Fatalf("unexpected incremental hash: got=%08x/%08x want=%08x/%08x", gotKey, gotLock, key, lock)
			}
			if b.Occupied().BitCount() > before.Occupied().BitCount() {
				t.Fatalf("piece count increased after %s", mv)
			}

			undo := *b
			undo.Apply(mv)
			if undo != before {
				t.Fatalf("move %s is not its own inverse", mv)
			}
		}
	}
}

func TestMoveListOverflow(t *testing.T) {
	t.Parallel()
	var ml MoveList
	for i := 0; i < MaxMoves; i++ {
		if err := ml.Push(Move{}); err != nil {
			t.Fatal("unexpected error:", err)
		}
	}
	if err := ml.Push(Move{}); !errors.Is(err, ErrMoveListOverflow) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrMoveListOverflow)
	}
}

func TestMoveListMoveToFront(t *testing.T) {
	t.Parallel()
	var ml MoveList
	for i := 0; i < 4; i++ {
		_ = ml.Push(Move{From: position.Pos(i)})
	}
	ml.MoveToFront(2)
	want := []position.Pos{2, 0, 1, 3}
	for i, p := range want {
		if got := ml.At(i).From; got != p {
			t.Errorf("unexpected order at %d: got=%d want=%d", i, got, p)
		}
	}
}
