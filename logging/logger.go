package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the leveled, structured logger every package in this module accepts at construction
// time, the same way cBiRRTMotionPlanner takes a logging.Logger in the teacher's motion planner.
// It is a small subset of zap's SugaredLogger plus a context-threaded Debug variant, which is all
// the planner's hot paths (sample, moveStart, the FMT* frontier pop) actually call.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	// Debugw logs a message plus alternating key/value pairs as structured zapcore.Fields, the way
	// the FMT* frontier pop reports a popped node's coordinate and frontier size for diagnostics
	// that a JSON-consuming appender can parse back out.
	Debugw(msg string, keysAndValues ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	// CDebugf logs at debug level, accepting a context for future trace-id propagation. The core
	// never derives behavior from ctx; it is threaded through purely to match the calling
	// convention the teacher's planners use for every log call inside a cancelable operation.
	CDebugf(ctx context.Context, template string, args ...interface{})
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// appenderCore is a zapcore.Core that hands each entry's message and structured fields straight to
// an Appender, matching Appender's own doc comment ("a subset of the zapcore.Core interface").
// zapcore.NewConsoleEncoder would instead bake fields into a pre-rendered byte string before any
// sink saw them, which is what previously made ZapcoreFieldsToJSON unreachable.
type appenderCore struct {
	appender Appender
	level    zapcore.LevelEnabler
	fields   []zapcore.Field
}

func (c *appenderCore) Enabled(level zapcore.Level) bool { return c.level.Enabled(level) }

func (c *appenderCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &appenderCore{appender: c.appender, level: c.level, fields: merged}
}

func (c *appenderCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

func (c *appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)
	return c.appender.Write(entry, all)
}

func (c *appenderCore) Sync() error { return c.appender.Sync() }

// NewLogger builds a Logger that writes through the given Appender at the given minimum level.
// Passing NewStdoutAppender() gives console output; NewFileAppender(path) gives a rotated on-disk
// log suitable for a long-running host process driving the planner on a tick loop.
func NewLogger(appender Appender, level zapcore.Level) Logger {
	core := &appenderCore{appender: appender, level: level}
	return &zapLogger{sugar: zap.New(core, zap.AddCaller()).Sugar()}
}

// NewTestLogger builds a Logger backed by zap's no-op core, for use in tests that only care about
// behavior, not log output, mirroring golog.NewTestLogger(t) usage throughout the teacher's tests.
func NewTestLogger() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debug(args ...interface{})                   { l.sugar.Debug(args...) }
func (l *zapLogger) Debugf(template string, args ...interface{}) { l.sugar.Debugf(template, args...) }
func (l *zapLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}
func (l *zapLogger) Infof(template string, args ...interface{})  { l.sugar.Infof(template, args...) }
func (l *zapLogger) Warnf(template string, args ...interface{})  { l.sugar.Warnf(template, args...) }
func (l *zapLogger) Errorf(template string, args ...interface{}) { l.sugar.Errorf(template, args...) }

func (l *zapLogger) CDebugf(_ context.Context, template string, args ...interface{}) {
	l.sugar.Debugf(template, args...)
}
