package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger. It is usable before Init is called
// and reconfigured once the log level is known.
var Log = logrus.New()

// Init configures the logger with the given level.
func Init(level string) {
	// JSON format for structured logging.
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetOutput(os.Stdout)

	switch strings.ToLower(level) {
	case "trace":
		Log.SetLevel(logrus.TraceLevel)
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	default:
		Log.SetLevel(logrus.InfoLevel)
	}
}
