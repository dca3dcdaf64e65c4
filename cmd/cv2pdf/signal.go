package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

// ExitInterrupted is used when a second signal aborts a graceful shutdown.
const ExitInterrupted = 130

// forceExit is replaced in tests.
var forceExit = os.Exit

// notifyContext cancels the returned context on the first shutdown signal.
// A second signal exits at once, so a stuck drain in `serve` or a long batch
// can still be interrupted. Call stop to release the handler.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return notifyOn(parent, make(chan os.Signal, 2), shutdownSignals...)
}

func notifyOn(parent context.Context, sigs chan os.Signal, watch ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	if len(watch) > 0 {
		signal.Notify(sigs, watch...)
	}

	stopped := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(stopped)
			cancel()
		})
	}

	go func() {
		select {
		case <-sigs:
			cancel()
		case <-stopped:
			return
		}
		select {
		case <-sigs:
			forceExit(ExitInterrupted)
		case <-stopped:
		}
	}()

	return ctx, stop
}
