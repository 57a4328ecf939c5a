package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/daystram/checkers/board"
	"github.com/daystram/checkers/book"
	"github.com/daystram/checkers/console"
	"github.com/daystram/checkers/egdb"
	"github.com/daystram/checkers/engine"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	profileRun = flag.Bool("profile", false, "write a CPU profile to the working directory")
	verbose    = flag.Bool("verbose", false, "enable debug logs")

	bookPath = flag.String("book", "", "opening book file")
	dbPath   = flag.String("db", "", "endgame database config file (db.ini)")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	perftDepth    = flag.Int("perft", 0, "run perft to the given depth")
	perftParallel = flag.Bool("perft.parallel", true, "split the perft root moves across goroutines")

	searchRun      = flag.Bool("search", false, "run search mode, the engine against a random mover")
	searchSteps    = flag.Int("search.steps", 50, "number of moves to play in search mode")
	searchDepth    = flag.Int("search.depth", 0, "search depth in search mode")
	searchMovetime = flag.Duration("search.movetime", engine.DefaultMovetime, "time per move in search mode")
	searchSeed     = flag.Uint64("search.seed", 1, "seed of the random mover in search mode")

	analyzeFile    = flag.String("analyze", "", "analyze every position of a file, one FEN per line")
	analyzeWorkers = flag.Int("analyze.workers", runtime.NumCPU(), "number of positions analyzed at once")
	analyzeDepth   = flag.Int("analyze.depth", 11, "search depth in analyze mode")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	if *profileRun {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	err := realMain(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitErr
	}
	return exitOK
}

func realMain(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := newLogger(*verbose)
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}

	switch {
	case *movegenRun:
		return movegen(fen, *movegenDraw)
	case *perftDepth > 0:
		return perft(ctx, *perftDepth, fen, *perftParallel)
	case *analyzeFile != "":
		db, closeDB := openDatabase(log, *dbPath)
		defer closeDB()
		return analyze(ctx, log, db, *analyzeFile, *analyzeDepth, *analyzeWorkers)
	}

	bk := openBook(log, *bookPath)
	db, closeDB := openDatabase(log, *dbPath)
	defer closeDB()

	if *searchRun {
		clock := engine.ClockConfig{Movetime: *searchMovetime}
		if *searchDepth > 0 {
			clock = engine.ClockConfig{Depth: *searchDepth}
		}
		return search(ctx, log, bk, db, fen, *searchSteps, clock, *searchSeed)
	}

	return console.NewInterface(console.Config{
		In:       os.Stdin,
		Out:      os.Stdout,
		Book:     bk,
		Database: db,
		Log:      log,
	}).Run(ctx)
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// openBook loads the opening book. Without one the engine only varies the
// first move from the starting position.
func openBook(log zerolog.Logger, path string) engine.Book {
	if path == "" {
		return nil
	}
	bk, err := book.Open(path, book.Options{Logger: log})
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("opening book disabled")
		return nil
	}
	log.Info().Int("entries", bk.Len()).Msg("opening book loaded")
	return bk
}

// openDatabase loads the endgame database. A missing or broken database only
// disables it.
func openDatabase(log zerolog.Logger, path string) (engine.Database, func()) {
	noop := func() {}
	if path == "" {
		return nil, noop
	}
	cfg, err := egdb.LoadConfig(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("endgame database disabled")
		return nil, noop
	}
	cfg.Logger = log
	db, err := egdb.Open(cfg)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("endgame database disabled")
		return nil, noop
	}
	return db, func() {
		stats := db.Stats()
		log.Debug().
			Int64("lookups", stats.Lookups).
			Int64("misses", stats.Misses).
			Int64("block_hits", stats.BlockHits).
			Int64("block_reads", stats.BlockReads).
			Msg("endgame database closed")
		_ = db.Close()
	}
}
