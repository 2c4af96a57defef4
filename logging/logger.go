package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func BoostrapLogger() {
	Log = &logrus.Logger{
		Formatter: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		},
		Level: logrus.InfoLevel,
	}

	if os.Getenv("APP_ENV") == "local" {
		Log.Level = logrus.DebugLevel
	}
	Log.Out = os.Stdout
}
