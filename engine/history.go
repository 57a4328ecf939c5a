package engine

import (
	"github.com/daystram/checkers/board"
	"github.com/daystram/checkers/position"
)

const (
	historyWeight    = 300
	historyMinStores = 100
)

// HistoryTable counts how often each from-to pair was stored as best move.
type HistoryTable struct {
	counts [board.TotalCells][board.TotalCells]uint32
	stores uint32
}

// Record notes a table store; the best move's pair is counted when there is one.
func (h *HistoryTable) Record(mv board.Move, s board.Side) {
	h.stores++
	if mv.Own(s) == 0 {
		return
	}
	h.counts[mv.From][mv.To]++
}

func (h *HistoryTable) Score(from, to position.Pos) int32 {
	if h.stores <= historyMinStores {
		return 0
	}
	return int32(uint64(historyWeight) * uint64(h.counts[from][to]) / uint64(h.stores))
}

func (h *HistoryTable) Stores() uint32 {
	return h.stores
}

func (h *HistoryTable) Reset() {
	*h = HistoryTable{}
}
