package main

import (
	"context"
	"os"
	"testing"
	"time"
)

// Signals are injected through the channel; the OS is not involved.
func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("live until stopped", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		if ctx.Err() != nil {
			t.Fatal("context cancelled before stop()")
		}
		stop()
		<-ctx.Done()
	})

	t.Run("follows parent", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		<-ctx.Done()
		if ctx.Err() == nil {
			t.Error("expected cancellation from parent")
		}
	})

	t.Run("first signal cancels", func(t *testing.T) {
		t.Parallel()

		sigs := make(chan os.Signal, 2)
		ctx, stop := notifyOn(context.Background(), sigs)
		defer stop()

		sigs <- os.Interrupt
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context not cancelled by signal")
		}
	})
}

// Not parallel: swaps forceExit.
func TestNotifyContext_SecondSignalForcesExit(t *testing.T) {
	exited := make(chan int, 1)
	forceExit = func(code int) { exited <- code }
	t.Cleanup(func() { forceExit = os.Exit })

	sigs := make(chan os.Signal, 2)
	ctx, stop := notifyOn(context.Background(), sigs)
	defer stop()

	sigs <- os.Interrupt
	<-ctx.Done()
	sigs <- os.Interrupt

	select {
	case code := <-exited:
		if code != ExitInterrupted {
			t.Errorf("exit code = %d, want %d", code, ExitInterrupted)
		}
	case <-time.After(time.Second):
		t.Fatal("second signal did not force exit")
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"cv2pdf", "export", "-v", "cv.yaml"}, true},
		{[]string{"cv2pdf", "serve", "--verbose"}, true},
		{[]string{"cv2pdf", "export", "cv.yaml"}, false},
		{[]string{"cv2pdf", "export", "--", "-v"}, false},
	}
	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
