package log

import (
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Log struct singleton
type Log struct {
	AppName  string
	LogLevel int
	Logger   *logrus.Logger
}

var logger Log

var mapOfLogLevel = map[string]int{
	"DEBUG": 1,
	"ERROR": 2,
}

// InitLogger initialize logger from Viper
func InitLogger(v *viper.Viper) {
	levelStr := v.GetString("log.level")
	appName := v.GetString("app.name")

	logger = Log{
		AppName:  appName,
		LogLevel: mapOfLogLevel[levelStr],
		Logger:   newLogrusLogger(v),
	}
}

// GetLogger return singleton
func GetLogger() Log {
	return logger
}

// internal helper to create logrus instance
func newLogrusLogger(v *viper.Viper) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	levelStr := v.GetString("log.level")
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}

func (l Log) fields(context, scope, meta, file string, line int) logrus.Fields {
	return logrus.Fields{
		"service": l.AppName,
		"context": context,
		"scope":   scope,
		"meta":    meta,
		"file":    file,
		"line":    line,
	}
}

// -----------------------------
// Info
func (l Log) Info(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	if l.LogLevel <= 1 {
		_, file, line, _ := runtime.Caller(1)
		l.Logger.WithFields(l.fields(context, scope, meta, file, line)).Info(message)
	}
}

// -----------------------------
// Warn, for anomalies that are acknowledged rather than failed
func (l Log) Warn(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	_, file, line, _ := runtime.Caller(1)
	l.Logger.WithFields(l.fields(context, scope, meta, file, line)).Warn(message)
}

// -----------------------------
// Error
func (l Log) Error(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	if l.LogLevel <= 2 {
		_, file, line, _ := runtime.Caller(1)
		l.Logger.WithFields(l.fields(context, scope, meta, file, line)).Error(message)
	}
}
