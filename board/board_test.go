package board

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fen     string
		move    string
		wantErr error
	}{
		{name: "opening", fen: DefaultStartingPositionFEN, move: "11-15"},
		{name: "capture with x", fen: "B:W16,24:B11", move: "11x27"},
		{name: "capture with dash", fen: "B:W16,24:B11", move: "11-27"},
		{name: "partial capture", fen: "B:W16,24:B11", move: "11x20", wantErr: ErrIllegalMove},
		{name: "wrong side", fen: DefaultStartingPositionFEN, move: "22-18", wantErr: ErrIllegalMove},
		{name: "garbage", fen: DefaultStartingPositionFEN, move: "e2e4", wantErr: ErrIllegalMove},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			mv, err := b.ParseMove(tt.move)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if mv.IsNull() {
				t.Error("unexpected null move")
			}
		})
	}
}

func TestReversed(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "W:WK10,K15,18,24,27,28:B12,16,20,K22,K25,K29")
	r := b.Reversed()
	if r.Turn() != SideBlack {
		t.Errorf("unexpected turn: got=%s want=%s", r.Turn(), SideBlack)
	}
	if r.BlackMen().BitCount() != b.WhiteMen().BitCount() || r.WhiteKings().BitCount() != b.BlackKings().BitCount() {
		t.Errorf("unexpected piece counts:\n%s", r.Dump())
	}
	if back := r.Reversed(); !back.Equals(b) {
		t.Errorf("unexpected double reverse: got=%s want=%s", back.FEN(), b.FEN())
	}
}

func TestState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen  string
		want State
	}{
		{fen: DefaultStartingPositionFEN, want: StateRunning},
		{fen: "B:W21:B", want: StateWhiteWins},
		{fen: "W:W:B1", want: StateBlackWins},
		{fen: "B:W8,11:B4", want: StateWhiteWins},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			if got := b.State(); got != tt.want {
				t.Errorf("unexpected state: got=%s want=%s", got, tt.want)
			}
		})
	}
}

func TestNewBoardFromBitmaps(t *testing.T) {
	t.Parallel()
	if _, err := NewBoardFromBitmaps(0x1, 0x1, 0, 0, SideBlack); !errors.Is(err, ErrInvalidFEN) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidFEN)
	}
	b, err := NewBoardFromBitmaps(0x00000FFF, 0, 0xFFF00000, 0, SideBlack)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := b.FEN(); got != DefaultStartingPositionFEN {
		t.Errorf("unexpected FEN: got=%s want=%s", got, DefaultStartingPositionFEN)
	}
}
