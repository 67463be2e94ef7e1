package logging

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DispatcherLogger feeds dispatcher events into zerolog. Every entry is
// tagged component=dispatcher, and a "source" value, the replay path, also
// gets its base name under "replay" so batch logs stay greppable.
type DispatcherLogger struct {
	logger zerolog.Logger
}

// NewDispatcherLogger wraps logger for the dispatcher.
func NewDispatcherLogger(logger zerolog.Logger) *DispatcherLogger {
	return &DispatcherLogger{logger: logger.With().Str("component", "dispatcher").Logger()}
}

func (l *DispatcherLogger) Debug(msg string, keysAndValues ...any) {
	emit(l.logger.Debug(), msg, keysAndValues)
}

func (l *DispatcherLogger) Info(msg string, keysAndValues ...any) {
	emit(l.logger.Info(), msg, keysAndValues)
}

func (l *DispatcherLogger) Error(msg string, keysAndValues ...any) {
	emit(l.logger.Error(), msg, keysAndValues)
}

// emit writes key-value pairs with typed zerolog fields. Non-string keys are
// dropped; a dangling value is kept under "!extra".
func emit(e *zerolog.Event, msg string, kv []any) {
	if e == nil {
		return
	}
	for i := 0; i < len(kv); i += 2 {
		if i+1 == len(kv) {
			e = e.Interface("!extra", kv[i])
			break
		}
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = field(e, key, kv[i+1])
	}
	e.Msg(msg)
}

func field(e *zerolog.Event, key string, v any) *zerolog.Event {
	switch v := v.(type) {
	case error:
		return e.AnErr(key, v)
	case time.Duration:
		return e.Dur(key, v)
	case string:
		if key == "source" && v != "" {
			e = e.Str("replay", filepath.Base(v))
		}
		return e.Str(key, v)
	case int:
		return e.Int(key, v)
	case uint:
		return e.Uint(key, v)
	case bool:
		return e.Bool(key, v)
	case fmt.Stringer:
		return e.Stringer(key, v)
	}
	return e.Interface(key, v)
}
