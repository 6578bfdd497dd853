// Package logging holds the process-wide diagnostic settings for gphist.
//
// The numerical packages are silent by default. Setting Mode to Debug makes
// Logger return a development zap logger; SetLogger installs a caller's own.
package logging

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// This is handled this way so that every function in the project doesn't
// need to be handed a logger.
var (
	Mode Flag = Nil

	mu     sync.Mutex
	logger *zap.Logger
	// Built lazily, one per Mode, so that changing Mode takes effect.
	modeLoggers = map[Flag]*zap.Logger{}
)

// Logger returns the installed logger. If none has been installed it returns
// a development logger in Debug mode, a production logger in Performance mode
// and a no-op logger otherwise.
func Logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		return logger
	}
	if l, ok := modeLoggers[Mode]; ok {
		return l
	}
	var (
		l   *zap.Logger
		err error
	)
	switch Mode {
	case Debug:
		l, err = zap.NewDevelopment()
	case Performance:
		l, err = zap.NewProduction()
	default:
		return zap.NewNop()
	}
	if err != nil {
		return zap.NewNop()
	}
	modeLoggers[Mode] = l
	return l
}

// SetLogger replaces the package logger. Passing nil reverts to the Mode
// based default.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// MemString returns a string containing various statistics on the current
// memory usage of the process.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}

// Perf logs the current memory usage under the given stage name when
// Mode is Performance or Debug.
func Perf(stage string) {
	if Mode == Nil {
		return
	}
	Logger().Info("memory", zap.String("stage", stage),
		zap.String("usage", MemString()))
}
