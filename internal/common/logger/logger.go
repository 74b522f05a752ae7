package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger emits structured JSON log entries tagged with a service name.
// Actions are short snake_case event names ("order_saved", "geocode_failed").
type Logger struct {
	service string
	l       *logrus.Logger
}

func New(service string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})
	return &Logger{service: service, l: l}
}

func (l *Logger) entry(fields map[string]any) *logrus.Entry {
	e := l.l.WithField("service", l.service)
	if fields != nil {
		e = e.WithFields(logrus.Fields(fields))
	}
	return e
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.entry(fields).Info(action)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.entry(fields).Debug(action)
}

// Warn is used for tolerated conditions such as malformed price strings,
// which are data-quality signals rather than user-facing errors.
func (l *Logger) Warn(action string, fields map[string]any) {
	l.entry(fields).Warn(action)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	e := l.entry(fields)
	if err != nil {
		e = e.WithError(err)
	}
	e.Error(action)
}
