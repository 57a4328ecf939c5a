package main

import (
	"context"
	"fmt"

	"github.com/daystram/checkers/bench"
)

func perft(ctx context.Context, depth int, fen string, parallel bool) error {
	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			fmt.Println(s)
		}
	}()

	fmt.Printf("============ perft(%d): %s\n", depth, fen)
	_, err := bench.Perft(ctx, depth, fen, parallel, true, out)
	close(out)
	<-done
	return err
}
