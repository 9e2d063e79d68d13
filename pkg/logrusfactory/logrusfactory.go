// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package logrusfactory provides a logging.LoggerFactory that writes
// through logrus, so an agent can share the host application's logger.
package logrusfactory

import (
	"github.com/pion/logging"
	"github.com/sirupsen/logrus"
)

// SubsystemField is the logrus field carrying the logger scope.
const SubsystemField = "subsystem"

// Factory creates leveled loggers on top of a logrus logger.
type Factory struct {
	// Logger defaults to logrus.StandardLogger().
	Logger *logrus.Logger
}

// New returns a Factory writing to logger.
func New(logger *logrus.Logger) *Factory {
	return &Factory{Logger: logger}
}

// NewLogger implements logging.LoggerFactory.
func (f *Factory) NewLogger(scope string) logging.LeveledLogger {
	logger := f.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &leveledLogger{entry: logger.WithField(SubsystemField, scope)}
}

type leveledLogger struct {
	entry *logrus.Entry
}

func (l *leveledLogger) Trace(msg string) { l.entry.Trace(msg) }
func (l *leveledLogger) Tracef(format string, args ...any) {
	l.entry.Tracef(format, args...)
}

func (l *leveledLogger) Debug(msg string) { l.entry.Debug(msg) }
func (l *leveledLogger) Debugf(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *leveledLogger) Info(msg string) { l.entry.Info(msg) }
func (l *leveledLogger) Infof(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *leveledLogger) Warn(msg string) { l.entry.Warn(msg) }
func (l *leveledLogger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *leveledLogger) Error(msg string) { l.entry.Error(msg) }
func (l *leveledLogger) Errorf(format string, args ...any) {
	l.entry.Errorf(format, args...)
}
