//go:build !windows

package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bethropolis/nib/internal/input"
	"github.com/bethropolis/nib/internal/logger"
)

// watchResize turns SIGWINCH into a resize notification on src.
func watchResize(src *input.QueueSource) func() {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-sigs:
				logger.DebugTagf("resize", "App: window changed")
				src.Notify()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
