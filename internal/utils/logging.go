// internal/utils/logging.go
package utils

import (
	"io"

	"github.com/sirupsen/logrus"
)

// ConfigureLogger sets the global logrus level and format: JSON in production,
// text otherwise. An unknown level falls back to info.
func ConfigureLogger(out io.Writer, level, environment string) {
	logrus.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
