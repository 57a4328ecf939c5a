package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/checkers/board"
	"github.com/daystram/checkers/book"
	"github.com/daystram/checkers/egdb"
)

var (
	ErrNoLegalMove = errors.New("no legal move")
)

func DefaultLogger(a ...any) {
	fmt.Println(a...)
}

// Book supplies prepared moves for known positions.
type Book interface {
	Lookup(b *board.Board) (board.Move, bool)
}

// Database classifies endgame positions with few pieces.
type Database interface {
	Classify(b *board.Board, s board.Side) egdb.Value
	MaxPieces() int
}

type EngineConfig struct {
	// Logger receives one diagnostic line per completed iteration.
	Logger func(...any)
	Log    zerolog.Logger

	// Book defaults to an empty book, which still varies the first move.
	Book     Book
	Database Database
}

type SearchConfig struct {
	ClockConfig ClockConfig

	// Reset forgets the positions played before this search.
	Reset bool
	Debug bool
}

type Result struct {
	Move    board.Move
	Value   int
	Depth   int
	MaxPly  int
	Nodes   uint64
	Elapsed time.Duration
	Line    []board.Move

	FromBook    bool
	Interrupted bool
}

type Stats struct {
	Nodes      uint64
	MaxPly     int
	TTSearches int
	TTHits     int
	TTStores   int
	DBLookups  int
}

type Engine struct {
	tt      *TranspositionTable
	history HistoryTable
	clock   *Clock
	moves   [MaxDepth + 2]board.MoveList

	book        Book
	db          Database
	dbMaxPieces int

	// line holds the positions on the current path, the played game below historyOffset
	line [historyOffset + MaxDepth + 2]linePosition
	game []linePosition

	ply        int
	maxPly     int
	nodes      uint64
	dbLookups  int
	truncation int
	aborted    bool
	err        error

	logger func(...any)
	log    zerolog.Logger
}

func NewEngine(cfg *EngineConfig) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = DefaultLogger
	}
	if cfg.Book == nil {
		cfg.Book = book.New(nil, book.Options{Logger: cfg.Log})
	}

	e := &Engine{
		tt:     NewTranspositionTable(),
		clock:  NewClock(),
		book:   cfg.Book,
		db:     cfg.Database,
		logger: cfg.Logger,
		log:    cfg.Log,
	}
	if e.db != nil {
		e.dbMaxPieces = e.db.MaxPieces()
		e.log.Info().Int("pieces", e.dbMaxPieces).Msg("endgame database enabled")
	}
	return e
}

// Reset clears the table, the history and the record of played positions.
func (e *Engine) Reset() {
	e.tt.Clear()
	e.history.Reset()
	e.game = e.game[:0]
}

// Search picks a move for the side to move in b and plays it on b.
func (e *Engine) Search(ctx context.Context, b *board.Board, cfg *SearchConfig) (Result, error) {
	if cfg == nil {
		cfg = &SearchConfig{}
	}
	if cfg.Reset {
		e.game = e.game[:0]
	}

	s := b.Turn()
	var root board.MoveList
	if err := b.GenerateMoves(s, &root); err != nil {
		return Result{}, err
	}
	if root.Len() == 0 {
		return Result{}, ErrNoLegalMove
	}

	if mv, ok := e.book.Lookup(b); ok {
		e.logger(fmt.Sprintf("book move %s", mv))
		e.recordGame(b)
		b.Apply(mv)
		e.recordGame(b)
		return Result{Move: mv, FromBook: true, Line: []board.Move{mv}}, nil
	}

	res, err := e.search(ctx, b, &root, cfg)
	if err != nil {
		return Result{}, err
	}
	b.Apply(res.Move)
	e.recordGame(b)
	return res, nil
}

func (e *Engine) search(ctx context.Context, b *board.Board, root *board.MoveList, cfg *SearchConfig) (Result, error) {
	s := b.Turn()
	e.history.Reset()
	e.tt.Clear()
	e.tt.ResetStats()
	e.nodes = 0
	e.maxPly = 0
	e.dbLookups = 0
	e.ply = 0
	e.aborted = false
	e.err = nil
	e.truncation = truncationDepth
	if b.Occupied().BitCount() <= endgamePieces {
		e.truncation = 0
	}
	if !root.At(0).IsCapture {
		orderQuiet(b, s, root, &e.history, 0, 0)
	}
	e.prepareLine(b)

	e.clock.Start(ctx, &cfg.ClockConfig)
	defer e.clock.Stop()

	printer := message.NewPrinter(language.English)
	var best, last board.Move
	var value, lastValue, depth int
	hasLast, interrupted := false, false
	for d := 1; d < MaxDepth; d += 2 {
		alpha, beta := lastValue-aspirationWindow, lastValue+aspirationWindow
		best, value = e.searchRoot(b, root, fullPly*d, alpha, beta)
		if value >= beta {
			if cfg.Debug {
				e.logger(printer.Sprintf("best: %s depth %d/%d nodes %d value>%d time %.2fs",
					best, d, e.maxPly, e.nodes, value, e.clock.Elapsed().Seconds()))
			}
			best, value = e.searchRoot(b, root, fullPly*d, lastValue, scoreInfinite)
			if value <= lastValue {
				best, value = e.searchRoot(b, root, fullPly*d, -scoreInfinite, scoreInfinite)
			}
		}
		if value <= alpha {
			if cfg.Debug {
				e.logger(printer.Sprintf("best: %s depth %d/%d nodes %d value<%d time %.2fs",
					best, d, e.maxPly, e.nodes, value, e.clock.Elapsed().Seconds()))
			}
			best, value = e.searchRoot(b, root, fullPly*d, -scoreInfinite, lastValue)
			if value >= lastValue {
				best, value = e.searchRoot(b, root, fullPly*d, -scoreInfinite, scoreInfinite)
			}
		}
		if e.err != nil {
			return Result{}, e.err
		}

		if e.aborted {
			// the interrupted iteration is unusable
			if !hasLast {
				last, lastValue = root.At(0), 0
			}
			best, value = last, lastValue
			interrupted = true
			e.logger(printer.Sprintf("interrupt: best %s value %d", best, value))
			break
		}

		elapsed := e.clock.Elapsed()
		e.logger(printer.Sprintf("best: %s depth %d/%d nodes %d value %d time %.2fs %.0fkN/s db %d",
			best, d, e.maxPly, e.nodes, value, elapsed.Seconds(), float64(e.nodes)/1000/(elapsed.Seconds()+1e-9), e.dbLookups))

		lastValue, last, hasLast = value, best, true
		depth = d
		if e.clock.DoneByMovetime() || e.clock.DoneByDepth(d) || e.clock.DoneByNodes(e.nodes) {
			break
		}
		if root.Len() == 1 || abs(value) > scoreDecisive {
			break
		}
	}

	line := e.principalVariation(b, best)
	e.logger(fmt.Sprintf("pv: %s", FormatLine(line)))
	searches, hits, stores := e.tt.Stats()
	e.log.Debug().
		Uint64("nodes", e.nodes).
		Int("searches", searches).
		Int("hits", hits).
		Int("stores", stores).
		Int("db", e.dbLookups).
		Msg("search done")

	return Result{
		Move:        best,
		Value:       value,
		Depth:       depth,
		MaxPly:      e.maxPly,
		Nodes:       e.nodes,
		Elapsed:     e.clock.Elapsed(),
		Line:        line,
		Interrupted: interrupted,
	}, nil
}

func (e *Engine) Stats() Stats {
	searches, hits, stores := e.tt.Stats()
	return Stats{
		Nodes:      e.nodes,
		MaxPly:     e.maxPly,
		TTSearches: searches,
		TTHits:     hits,
		TTStores:   stores,
		DBLookups:  e.dbLookups,
	}
}

func max[T constraints.Ordered](x1, x2 T) T {
	if x1 > x2 {
		return x1
	}
	return x2
}

func min[T constraints.Ordered](x1, x2 T) T {
	if x1 < x2 {
		return x1
	}
	return x2
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}
