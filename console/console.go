package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/daystram/checkers/bench"
	"github.com/daystram/checkers/board"
	"github.com/daystram/checkers/engine"
)

var (
	EngineName = "Checkers"

	defaultOptions = options{
		debug:         false,
		movetime:      engine.DefaultMovetime,
		parallelPerft: true,
	}

	errPrinter  = color.New(color.FgRed)
	movePrinter = color.New(color.FgGreen, color.Bold)
)

type options struct {
	debug         bool
	movetime      time.Duration
	parallelPerft bool
}

type Config struct {
	In  io.Reader
	Out io.Writer

	Book     engine.Book
	Database engine.Database
	Log      zerolog.Logger
}

// Interface is a line based front end around a single engine. Searches run in
// the background so that stop can interrupt them.
type Interface struct {
	cfg     Config
	board   *board.Board
	engine  *engine.Engine
	options options

	mu            sync.Mutex
	wg            sync.WaitGroup
	engineRunning bool
	engineCancel  context.CancelFunc
}

func NewInterface(cfg Config) *Interface {
	return &Interface{
		cfg:     cfg,
		options: defaultOptions,
	}
}

func (i *Interface) Run(ctx context.Context) error {
	i.reset(ctx)
	i.println(fmt.Sprintf("%s ready", EngineName))

	// input that ends without quit lets a running search finish
	defer i.wg.Wait()

	scanner := bufio.NewScanner(i.cfg.In)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "" {
			continue
		}

		switch args := strings.Fields(cmd); args[0] {
		case "new":
			i.reset(ctx)
		case "setoption":
			i.commandSetOption(ctx, args[1:])
		case "position":
			i.commandPosition(ctx, args[1:])
		case "d":
			i.commandDraw(ctx)
		case "go":
			i.commandGo(ctx, args[1:])
		case "stop":
			i.commandStop(ctx)
		case "move":
			i.commandMove(ctx, args[1:])
		case "perft":
			i.commandPerft(ctx, args[1:])
		case "quit":
			i.commandStop(ctx)
			return nil
		default:
			i.printError(fmt.Errorf("unknown command '%s'", args[0]))
		}
	}
	return scanner.Err()
}

func (i *Interface) commandSetOption(_ context.Context, args []string) {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		i.printError(errors.New("usage: setoption name <name> value <value>"))
		return
	}
	switch name, valueStr := strings.ToLower(args[1]), args[3]; name {
	case "debug":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			i.printError(err)
			return
		}
		i.options.debug = value
	case "movetime":
		value, err := strconv.ParseUint(valueStr, 10, 64)
		if err != nil || value < 10 || value > uint64(engine.MaxMovetime.Milliseconds()) {
			i.printError(fmt.Errorf("invalid movetime '%s'", valueStr))
			return
		}
		i.options.movetime = time.Duration(value) * time.Millisecond
	default:
		i.printError(fmt.Errorf("unknown option '%s'", name))
	}
}

func (i *Interface) commandPosition(_ context.Context, args []string) {
	if i.isRunning() || len(args) == 0 {
		return
	}

	var fen string
	switch args[0] {
	case "fen":
		fen = strings.Join(args[1:], " ")
	case "start":
		fen = board.DefaultStartingPositionFEN
	default:
		i.printError(fmt.Errorf("unknown position '%s'", args[0]))
		return
	}

	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		i.printError(err)
		return
	}
	i.board = b
}

func (i *Interface) commandDraw(_ context.Context) {
	if i.isRunning() {
		return
	}
	i.println(i.board.Draw())
	i.println(i.board.FEN())
}

func (i *Interface) commandMove(_ context.Context, args []string) {
	if i.isRunning() || len(args) != 1 {
		return
	}
	mv, err := i.board.ParseMove(args[0])
	if err != nil {
		i.printError(err)
		return
	}
	i.board.Apply(mv)
	if st := i.board.State(); !st.IsRunning() {
		i.println(fmt.Sprintf("result %s", st))
	}
}

func (i *Interface) commandPerft(ctx context.Context, args []string) {
	if i.isRunning() || len(args) != 1 {
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		i.printError(fmt.Errorf("invalid depth '%s'", args[0]))
		return
	}

	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			i.println(s)
		}
	}()
	_, err = bench.Perft(ctx, depth, i.board.FEN(), i.options.parallelPerft, true, out)
	close(out)
	<-done
	if err != nil {
		i.printError(err)
	}
}

func (i *Interface) commandGo(ctx context.Context, args []string) {
	if i.isRunning() {
		return
	}

	clock := engine.ClockConfig{Movetime: i.options.movetime}
	if len(args) == 2 {
		value, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			i.printError(err)
			return
		}
		switch args[0] {
		case "depth":
			clock = engine.ClockConfig{Depth: int(value)}
		case "movetime":
			clock = engine.ClockConfig{Movetime: time.Duration(value) * time.Millisecond}
		case "nodes":
			clock = engine.ClockConfig{Nodes: value}
		default:
			i.printError(fmt.Errorf("unknown search limit '%s'", args[0]))
			return
		}
	} else if len(args) == 1 && args[0] == "infinite" {
		clock = engine.ClockConfig{}
	}

	engineCtx, engineCancel := context.WithCancel(ctx)
	i.mu.Lock()
	i.engineRunning = true
	i.engineCancel = engineCancel
	i.mu.Unlock()

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		defer func() {
			engineCancel()
			i.mu.Lock()
			i.engineRunning = false
			i.mu.Unlock()
		}()

		res, err := i.engine.Search(engineCtx, i.board, &engine.SearchConfig{
			ClockConfig: clock,
			Debug:       i.options.debug,
		})
		if err != nil {
			i.printError(err)
			return
		}
		i.println(movePrinter.Sprintf("bestmove %s", res.Move))
		if st := i.board.State(); !st.IsRunning() {
			i.println(fmt.Sprintf("result %s", st))
		}
	}()
}

func (i *Interface) commandStop(_ context.Context) {
	i.mu.Lock()
	if i.engineRunning {
		i.engineCancel()
	}
	i.mu.Unlock()
	i.wg.Wait()
}

func (i *Interface) reset(ctx context.Context) {
	i.commandStop(ctx)
	i.commandPosition(ctx, []string{"start"})
	i.engine = engine.NewEngine(&engine.EngineConfig{
		Logger:   i.println,
		Log:      i.cfg.Log,
		Book:     i.cfg.Book,
		Database: i.cfg.Database,
	})
}

func (i *Interface) isRunning() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engineRunning
}

func (i *Interface) println(a ...any) {
	i.mu.Lock()
	defer i.mu.Unlock()
	fmt.Fprintln(i.cfg.Out, a...)
}

func (i *Interface) printError(err error) {
	i.println(errPrinter.Sprintf("error: %v", err))
}
