// Package hostlog provides the ambient logging interface used across the
// core and its host tools. It deliberately stays a thin hand-rolled
// interface rather than a third-party logging framework, mirroring the
// pattern used throughout the retrieval pack.
package hostlog

import "fmt"

// Logger is the logging interface consumed by the Bus, CPU, and host tools.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type stdLogger struct{}

// New returns a Logger that prints every level to stdout with a level prefix.
func New() Logger {
	return &stdLogger{}
}

func (l *stdLogger) Infof(format string, args ...interface{}) {
	fmt.Printf("[INFO]\t"+format+"\n", args...)
}

func (l *stdLogger) Warnf(format string, args ...interface{}) {
	fmt.Printf("[WARN]\t"+format+"\n", args...)
}

func (l *stdLogger) Errorf(format string, args ...interface{}) {
	fmt.Printf("[ERROR]\t"+format+"\n", args...)
}

func (l *stdLogger) Debugf(format string, args ...interface{}) {
	fmt.Printf("[DEBUG]\t"+format+"\n", args...)
}

type nullLogger struct{}

// NewNull returns a Logger that discards everything, for use in tests.
func NewNull() Logger {
	return &nullLogger{}
}

func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Warnf(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}
