package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// BoostrapLogger installs the process-wide logger. Lambda runs get JSON lines so
// CloudWatch can index the fields; local runs get the text formatter.
func BoostrapLogger() {
	Log = logrus.New()
	Log.SetReportCaller(true)
	Log.SetOutput(os.Stdout)
	Log.SetLevel(logrus.DebugLevel)

	if os.Getenv("APP_ENV") == "local" {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
}

// SetLevel switches the log level, keeping the current one when name is unknown.
func SetLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		Log.Warnf("LOG: unknown level %q, keeping %s", name, Log.GetLevel())
		return
	}
	Log.SetLevel(level)
}
