package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init is called.
var Log = logrus.New()

// Init configures the global logger. LOG_LEVEL and LOG_FORMAT override the
// values coming from config.yaml.
func Init(level, format string, out io.Writer) {
	if env, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = env
	}
	if env, ok := os.LookupEnv("LOG_FORMAT"); ok {
		format = env
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if out == nil {
		out = os.Stdout
	}
	Log.SetOutput(out)
}
