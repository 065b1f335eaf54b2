// Package logrus implements the tsplot logger on top of logrus.
package logrus

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/slok/tsplot/internal/log"
)

type logger struct {
	entry *logrus.Entry
}

// NewLogrus returns a log.Logger backed by a logrus entry.
func NewLogrus(e *logrus.Entry) log.Logger {
	return logger{entry: e}
}

func (l logger) Infof(format string, args ...any)    { l.entry.Infof(format, args...) }
func (l logger) Warningf(format string, args ...any) { l.entry.Warningf(format, args...) }
func (l logger) Errorf(format string, args ...any)   { l.entry.Errorf(format, args...) }
func (l logger) Debugf(format string, args ...any)   { l.entry.Debugf(format, args...) }

func (l logger) WithValues(kv log.Kv) log.Logger {
	if len(kv) == 0 {
		return l
	}
	return logger{entry: l.entry.WithFields(logrus.Fields(kv))}
}

// WithCtxValues adds the values stored on the context (e.g: request ID) to the logger.
func (l logger) WithCtxValues(ctx context.Context) log.Logger {
	return l.WithValues(log.ValuesFromCtx(ctx))
}

func (l logger) SetValuesOnCtx(parent context.Context, values log.Kv) context.Context {
	return log.CtxWithValues(parent, values)
}
