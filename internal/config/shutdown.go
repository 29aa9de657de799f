package config

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

var isShuttingDown atomic.Bool

// StartListeningForShutdownSignal marks the process as shutting down when an
// interrupt or termination signal arrives. Background workers poll
// IsShouldShutdown to drain gracefully.
func StartListeningForShutdownSignal() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signals
		isShuttingDown.Store(true)
	}()
}

func IsShouldShutdown() bool {
	return isShuttingDown.Load()
}
