package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Leveled logger used by the record service and the bizcheck CLI.
// - backed by a single logrus instance
// - provides Debugf/Infof/Warnf/Errorf/Fatalf and Init(level)

var (
	mu  sync.RWMutex
	log = newLogrus()
)

func newLogrus() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		log.SetLevel(logrus.FatalLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
}

// SetFormat switches between the text (default) and json formatters.
func SetFormat(format string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
		return
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Get returns the underlying logrus logger for structured (field) logging.
func Get() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debugf(format string, v ...interface{}) { Get().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { Get().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { Get().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { Get().Errorf(format, v...) }

// Fatalf logs and exits regardless of the configured level.
func Fatalf(format string, v ...interface{}) {
	l := Get()
	l.Logf(logrus.FatalLevel, format, v...)
	l.Exit(1)
}

// LevelString returns the current level as text.
func LevelString() string {
	switch Get().GetLevel() {
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
