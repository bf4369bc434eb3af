/*
Package log defines the module-wide logging interface. By default messages are
routed through a hashicorp/go-hclog logger, but any implementation can be
plugged in with SetLogger.
*/
package log

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Logger is the minimal leveled logging interface used across the module.
type Logger interface {
	Errorf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

var logger Logger = NewHCLogger(nil)

// SetLogger overwrites the default module logger with a user specified one.
func SetLogger(l Logger) { logger = l }

// Errorf is the static formatted error logging function.
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Warnf is the static formatted warning logging function.
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Infof is the static formatted info logging function.
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debugf is the static formatted debug logging function.
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// HCLogger is the Logger implementation used by default, delegating every
// message to an hclog.Logger.
type HCLogger struct {
	l hclog.Logger
}

// NewHCLogger constructs an HCLogger. Passing a nil hclog.Logger configures
// the hclog default logger.
func NewHCLogger(l hclog.Logger) *HCLogger {
	if l == nil {
		l = hclog.Default()
	}
	return &HCLogger{l: l}
}

// Errorf logs a formatted message on the error level.
func (h *HCLogger) Errorf(format string, args ...interface{}) {
	h.l.Error(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message on the warning level.
func (h *HCLogger) Warnf(format string, args ...interface{}) {
	h.l.Warn(fmt.Sprintf(format, args...))
}

// Infof logs a formatted message on the info level.
func (h *HCLogger) Infof(format string, args ...interface{}) {
	h.l.Info(fmt.Sprintf(format, args...))
}

// Debugf logs a formatted message on the debug level.
func (h *HCLogger) Debugf(format string, args ...interface{}) {
	h.l.Debug(fmt.Sprintf(format, args...))
}
