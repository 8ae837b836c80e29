package simulation

import (
	"github.com/sirupsen/logrus"
)

// log is the package logger. Matches emit per-round traces at Debug and
// lifecycle events at Info.
var log = logrus.WithField("module", "simulation")

// SetLogger redirects the package's output, for callers that already own a
// configured logrus instance.
func SetLogger(logger *logrus.Logger) {
	log = logger.WithField("module", "simulation")
}
