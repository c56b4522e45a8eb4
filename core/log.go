package core

import (
	"io"

	"github.com/sirupsen/logrus"
)

// ComponentLogger tags l with the component name, a nil l discards
func ComponentLogger(l logrus.FieldLogger, component string) logrus.FieldLogger {
	if l == nil {
		l = DiscardLogger()
	}
	return l.WithField("component", component)
}

// DiscardLogger returns a logger that writes nowhere
func DiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
