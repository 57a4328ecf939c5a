package board

import (
	"errors"
	"testing"
)

func TestFEN(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen     string
		wantErr bool
	}{
		{fen: DefaultStartingPositionFEN, wantErr: false},
		{fen: "W:WK10,K15,18,24,27,28:B12,16,20,K22,K25,K29", wantErr: false},
		{fen: "B:W14,K32:BK1,5", wantErr: false},
		{fen: "W:W9,10,11:B22", wantErr: false},
		{fen: "B:W:B5", wantErr: false},
		{fen: "", wantErr: true},
		{fen: "invalid fen", wantErr: true},
		{fen: "X:W21:B1", wantErr: true},
		{fen: "B:W21:W22", wantErr: true},
		{fen: "B:W21:B21", wantErr: true},
		{fen: "B:W33:B1", wantErr: true},
		{fen: "B:W0:B1", wantErr: true},
		{fen: "B:Wx:B1", wantErr: true},
		{fen: "B:W2:B1", wantErr: true},
		{fen: "B:W21:B30", wantErr: true},
		{fen: "B:W21:B1:extrasegment", wantErr: true},
		{fen: "B:Q21:B1", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()

			b, err := NewBoard(WithFEN(tt.fen))
			if tt.wantErr {
				if err == nil {
					t.Error("error expected: got=nil")
				} else if !errors.Is(err, ErrInvalidFEN) {
					t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidFEN)
				}
				return
			}
			if err != nil {
				t.Fatal("unexpected error:", err)
			}

			if gotFEN := b.FEN(); gotFEN != tt.fen {
				t.Errorf("unexpected FEN: got=%s want=%s", gotFEN, tt.fen)
			}
		})
	}
}

func TestFENRanges(t *testing.T) {
	t.Parallel()
	b, err := NewBoard(WithFEN("B:W21-32:B1-12"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if b.BlackMen() != 0x00000FFF || b.WhiteMen() != 0xFFF00000 {
		t.Errorf("unexpected bitmaps: bm=%08x wm=%08x", b.BlackMen(), b.WhiteMen())
	}
	if got := b.FEN(); got != DefaultStartingPositionFEN {
		t.Errorf("unexpected FEN: got=%s want=%s", got, DefaultStartingPositionFEN)
	}
}
