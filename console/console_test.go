package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/daystram/checkers/board"
)

func run(t *testing.T, input string) (*Interface, string) {
	t.Helper()
	var out bytes.Buffer
	i := NewInterface(Config{
		In:  strings.NewReader(input),
		Out: &out,
	})
	if err := i.Run(context.Background()); err != nil {
		t.Fatal("unexpected error:", err)
	}
	return i, out.String()
}

func TestInterface(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		wantFEN  string
		contains []string
	}{
		{
			name:    "start position",
			input:   "d\nquit\n",
			wantFEN: board.DefaultStartingPositionFEN,
			contains: []string{
				EngineName + " ready",
				board.DefaultStartingPositionFEN,
			},
		},
		{
			name:    "player move",
			input:   "move 11-15\nd\n",
			wantFEN: "W:W21,22,23,24,25,26,27,28,29,30,31,32:B1,2,3,4,5,6,7,8,9,10,12,15",
		},
		{
			name:     "illegal move",
			input:    "move 11-14\n",
			wantFEN:  board.DefaultStartingPositionFEN,
			contains: []string{"error:"},
		},
		{
			name:     "engine move",
			input:    "position fen W:WK18:B14,6\ngo depth 3\n",
			wantFEN:  "B:WK2:B",
			contains: []string{"bestmove 18x2", "result StateWhiteWins"},
		},
		{
			name:     "perft",
			input:    "perft 3\n",
			wantFEN:  board.DefaultStartingPositionFEN,
			contains: []string{"d=3 nodes=302", "11-15: "},
		},
		{
			name:     "options",
			input:    "setoption name movetime value 200\nsetoption name depth value 1\n",
			wantFEN:  board.DefaultStartingPositionFEN,
			contains: []string{"unknown option 'depth'"},
		},
		{
			name:    "new game",
			input:   "move 11-15\nnew\n",
			wantFEN: board.DefaultStartingPositionFEN,
		},
		{
			name:     "unknown command",
			input:    "fly\n",
			wantFEN:  board.DefaultStartingPositionFEN,
			contains: []string{"unknown command 'fly'"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			i, out := run(t, tt.input)
			if got := i.board.FEN(); got != tt.wantFEN {
				t.Errorf("board got=%s want=%s", got, tt.wantFEN)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output %q should contain %q", out, want)
				}
			}
		})
	}
}

func TestInterfaceMovetime(t *testing.T) {
	t.Parallel()
	i, _ := run(t, "setoption name movetime value 50\n")
	if got := i.options.movetime.Milliseconds(); got != 50 {
		t.Errorf("movetime got=%d want=50", got)
	}
}
