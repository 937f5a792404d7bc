package rtcm3

import "log"

// Logger is the decoder's diagnostic sink: a level-gated, printf-style
// tracer passed in at construction instead of a package global.
type Logger interface {
	Tracef(level int, format string, args ...any)
}

// NopLogger discards every trace. It is the Decoder's default.
type NopLogger struct{}

func (NopLogger) Tracef(int, string, ...any) {}

// StdLogger wraps the standard library's log package, emitting everything
// at or below Level.
type StdLogger struct {
	Level  int
	Logger *log.Logger
}

func (s StdLogger) Tracef(level int, format string, args ...any) {
	if level > s.Level || s.Logger == nil {
		return
	}
	s.Logger.Printf(format, args...)
}
