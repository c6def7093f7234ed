package peg

import "github.com/sirupsen/logrus"

// LogrusTraceSink is the bundled TraceSink implementation, logging
// one structured entry per frame transition (grounded on
// open-policy-agent/opa's log package, the corpus's sole
// structured-logging wrapper around github.com/sirupsen/logrus).
type LogrusTraceSink struct {
	Logger *logrus.Logger
}

// NewLogrusTraceSink builds a sink over logger. A nil logger falls
// back to logrus's standard logger.
func NewLogrusTraceSink(logger *logrus.Logger) *LogrusTraceSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusTraceSink{Logger: logger}
}

// Trace logs ev at Debug level for a plain enter, and at Info/Warn
// for success/failure respectively, so a caller can filter frame
// noise out by raising the level.
func (s *LogrusTraceSink) Trace(ev TraceEvent) {
	entry := s.Logger.WithFields(logrus.Fields{
		"label": ev.Label,
		"start": ev.StartIndex,
	})
	switch ev.Phase {
	case "enter":
		entry.Debug("enter")
	case "success":
		entry.WithField("end", ev.EndIndex).Info("matched")
	case "failure":
		entry.Warn("failed")
	}
}
