package onelog

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

type Logger interface {
	Debug() Event
	Info() Event
	Warn() Event
	Error() Event
	Fatal() Event

	Err(err error) Event

	WithLevel(level slog.Level) Event
}

type logger struct {
	handler slog.Handler
}

var _ Logger = (*logger)(nil)

// Wrap builds a fluent logger on top of a slog handler. Nil handler produces
// a logger that drops everything.
func Wrap(handler slog.Handler) Logger {
	return &logger{
		handler: handler,
	}
}

// Discard is a logger that never emits anything.
func Discard() Logger { return &logger{handler: nil} }

func (l *logger) Debug() Event { return l.WithLevel(slog.LevelDebug) }
func (l *logger) Info() Event  { return l.WithLevel(slog.LevelInfo) }
func (l *logger) Warn() Event  { return l.WithLevel(slog.LevelWarn) }
func (l *logger) Error() Event { return l.WithLevel(slog.LevelError) }
func (l *logger) Fatal() Event { return l.WithLevel(slog.LevelError + 4) }

func (l *logger) Err(err error) Event { return l.Error().Err(err) }

func (l *logger) WithLevel(level slog.Level) Event {
	if l.handler == nil || !l.handler.Enabled(context.Background(), level) {
		return &event{handler: nil}
	}

	return &event{handler: l.handler, record: slog.Record{
		Time:  time.Now(),
		Level: level,
	}}
}

type Event interface {
	Enabled() bool
	Send()
	Msg(msg string)
	Msgf(format string, v ...any)

	AnErr(key string, err error) Event
	Any(key string, i any) Event
	Bool(key string, b bool) Event
	Caller(skip int) Event
	Ctx(ctx context.Context) Event
	Dur(key string, d time.Duration) Event
	Err(err error) Event
	Int(key string, i int) Event
	Str(key, val string) Event
	Stringer(key string, val fmt.Stringer) Event
	Strs(key string, vals []string) Event
}

type event struct {
	handler slog.Handler // nil handler means the event is a no-op

	ctx    context.Context
	record slog.Record
}

var _ Event = (*event)(nil)

func (e *event) Enabled() bool { return e.handler != nil }

func (e *event) Msg(msg string) {
	if e.handler == nil {
		return
	}

	e.record.Message = msg
	e.Send()
}

func (e *event) Msgf(format string, v ...any) {
	if e.handler == nil {
		return
	}

	e.record.Message = fmt.Sprintf(format, v...)
	e.Send()
}

func (e *event) Send() {
	if e.handler == nil {
		return
	}

	ctx := e.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	_ = e.handler.Handle(ctx, e.record)
}

func (e *event) AnErr(key string, err error) Event {
	if e.handler == nil {
		return e
	}

	errText := "<nil>"
	if err != nil {
		errText = err.Error()
	}
	e.record.AddAttrs(slog.String(key, errText))

	return e
}

func (e *event) Err(err error) Event { return e.AnErr("error", err) }

func (e *event) Any(key string, i any) Event {
	if e.handler == nil {
		return e
	}

	e.record.AddAttrs(slog.Any(key, i))
	return e
}

func (e *event) Bool(key string, b bool) Event {
	if e.handler == nil {
		return e
	}

	e.record.AddAttrs(slog.Bool(key, b))
	return e
}

func (e *event) Caller(skip int) Event {
	if e.handler == nil {
		return e
	}

	e.record.PC, _, _, _ = runtime.Caller(skip)
	return e
}

func (e *event) Ctx(ctx context.Context) Event {
	if e.handler == nil {
		return e
	}

	e.ctx = ctx
	return e
}

func (e *event) Dur(key string, d time.Duration) Event {
	if e.handler == nil {
		return e
	}

	e.record.AddAttrs(slog.Duration(key, d))
	return e
}

func (e *event) Int(key string, i int) Event {
	if e.handler == nil {
		return e
	}

	e.record.AddAttrs(slog.Int(key, i))
	return e
}

func (e *event) Str(key string, val string) Event {
	if e.handler == nil {
		return e
	}

	e.record.AddAttrs(slog.String(key, val))
	return e
}

func (e *event) Stringer(key string, val fmt.Stringer) Event {
	if e.handler == nil {
		return e
	}

	if val == nil {
		return e.Str(key, "<nil>")
	}

	return e.Str(key, val.String())
}

func (e *event) Strs(key string, vals []string) Event {
	if e.handler == nil {
		return e
	}

	e.record.AddAttrs(slog.Any(key, vals))
	return e
}
