// Package log provides centralized logging functionality using zap logger.
package log

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	sugared *zap.SugaredLogger
)

// Init initializes the package-level logger. Debug selects zap's development
// config (console encoder, debug level).
func Init(debug bool) error {
	var (
		zapLogger *zap.Logger
		err       error
	)
	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zapLogger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}

	mu.Lock()
	sugared = zapLogger.Sugar()
	mu.Unlock()
	return nil
}

// logger returns the sugared logger, falling back to a production logger when
// Init has not been called (tests, early startup).
func logger() *zap.SugaredLogger {
	mu.RLock()
	l := sugared
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if sugared == nil {
		fallback, err := zap.NewProduction(zap.AddCallerSkip(1))
		if err != nil {
			fallback = zap.NewNop()
		}
		sugared = fallback.Sugar()
	}
	return sugared
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = logger().Sync()
}

func Debugf(template string, args ...interface{}) {
	logger().Debugf(template, args...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	logger().Debugw(msg, keysAndValues...)
}

func Info(args ...interface{}) {
	logger().Info(args...)
}

func Infof(template string, args ...interface{}) {
	logger().Infof(template, args...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	logger().Infow(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	logger().Warnw(msg, keysAndValues...)
}

func Errorf(template string, args ...interface{}) {
	logger().Errorf(template, args...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	logger().Errorw(msg, keysAndValues...)
}

// Fatalf logs and exits the process.
func Fatalf(template string, args ...interface{}) {
	logger().Fatalf(template, args...)
}
