package redismodule

import (
	"sync"

	"go.uber.org/zap"

	"github.com/nebulaiq/redismodule-go/host"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
	loggerMu   sync.Mutex
)

// Logger returns the package's fallback logger, used by detached contexts.
// It is a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		loggerMu.Lock()
		defer loggerMu.Unlock()
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger replaces the fallback logger. Call before any logging happens.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// Log writes a message to the server log, or to the fallback logger when
// the context is detached.
func (c *Context) Log(level host.LogLevel, message string) {
	if c.api == nil {
		switch level {
		case host.LogDebug, host.LogVerbose:
			Logger().Debug(message)
		case host.LogNotice:
			Logger().Info(message)
		case host.LogWarning:
			Logger().Warn(message)
		}
		return
	}
	c.api.Log(level, message)
}

// LogDebug logs at debug severity.
func (c *Context) LogDebug(message string) {
	c.Log(host.LogDebug, message)
}

// LogVerbose logs at verbose severity.
func (c *Context) LogVerbose(message string) {
	c.Log(host.LogVerbose, message)
}

// LogNotice logs at notice severity.
func (c *Context) LogNotice(message string) {
	c.Log(host.LogNotice, message)
}

// LogWarning logs at warning severity.
func (c *Context) LogWarning(message string) {
	c.Log(host.LogWarning, message)
}
