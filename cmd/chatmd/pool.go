package main

import (
	"runtime"

	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-chatmd/internal/config"
)

// configureMaxProcs aligns GOMAXPROCS with the container CPU quota.
// Call the returned function to restore the previous value.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func configureMaxProcs(log logrus.FieldLogger) func() {
	undo, _ := maxprocs.Set(maxprocs.Logger(log.Debugf))
	return undo
}

// resolvePoolSize determines the worker count.
// Priority: explicit value > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return min(workers, config.MaxWorkers)
	}
	return min(max(runtime.GOMAXPROCS(0), 1), config.MaxWorkers)
}
