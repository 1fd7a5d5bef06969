package helpers

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger returns the process logger: colored text at debug level in
// development, JSON at info level elsewhere. A non-empty level overrides the
// default; an unknown one is reported and ignored.
func NewLogger(appName, env, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level = strings.TrimSpace(level); level != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(lvl)
		} else {
			logger.WithError(err).Warn("ignoring LOG_LEVEL")
		}
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env, "level": logger.GetLevel().String()}).Info("logger initialized")
	return logger
}

// LogError logs err with fields at error level.
func LogError(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	logger.WithFields(fields).WithError(err).Error(msg)
}

func LogInfo(logger *logrus.Logger, msg string, fields logrus.Fields) {
	logger.WithFields(fields).Info(msg)
}
