package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Leveled logger shared by the web service and the export CLI.
// Keeps the package-level Debugf/Infof/... API; output goes through logrus.

var base = newBase(os.Stdout)

func newBase(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	return l
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Unknown values fall back to info.
func Init(l string) {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		base.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		base.SetLevel(logrus.WarnLevel)
	case "error":
		base.SetLevel(logrus.ErrorLevel)
	case "fatal":
		base.SetLevel(logrus.FatalLevel)
	default:
		base.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects log output; used by tests and the export CLI (stderr).
func SetOutput(w io.Writer) { base.SetOutput(w) }

// With returns an entry carrying a component field, e.g. logger.With("state").
func With(component string) *logrus.Entry {
	return base.WithField("component", component)
}

func Debugf(format string, v ...interface{}) { base.Debugf(format, v...) }
func Infof(format string, v ...interface{}) { base.Infof(format, v...) }
func Warnf(format string, v ...interface{}) { base.Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { base.Errorf(format, v...) }
func Fatalf(format string, v ...interface{}) { base.Fatalf(format, v...) }

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) { base.Infoln(v...) }

func Debug(v string) { base.Debug(v) }
func Info(v string) { base.Info(v) }
func Warn(v string) { base.Warn(v) }
func Error(v string) { base.Error(v) }

// LevelString returns the current level as text.
func LevelString() string {
	switch base.GetLevel() {
	case logrus.DebugLevel, logrus.TraceLevel:
		return "debug"
	case logrus.WarnLevel:
		return "warn"
	case logrus.ErrorLevel:
		return "error"
	case logrus.FatalLevel, logrus.PanicLevel:
		return "fatal"
	}
	return "info"
}
