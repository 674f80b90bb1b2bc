package logger

import (
	"github.com/sirupsen/logrus"
)

type logrusService struct {
	logger *logrus.Logger
}

// NewService creates a new logger instance with the specified configuration
func NewService(config *Config) (Logger, error) {
	l := logrus.New()

	if config.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	l.SetLevel(level)

	return &logrusService{logger: l}, nil
}

func (l *logrusService) LogInfo(msg string, fields map[string]interface{}) {
	if fields != nil {
		l.logger.WithFields(fields).Info(msg)
	} else {
		l.logger.Info(msg)
	}
}

// LogError logs an error with context and returns the error so callers can
// pass it back up the chain in one statement.
func (l *logrusService) LogError(err error, msg string) error {
	if err != nil {
		l.logger.WithError(err).Error(msg)
	}
	return err
}

func (l *logrusService) LogErrorf(err error, format string, args ...interface{}) error {
	if err != nil {
		l.logger.WithError(err).Errorf(format, args...)
	}
	return err
}

func (l *logrusService) LogFatal(err error, context string) {
	l.logger.WithError(err).Fatal(context)
}

func (l *logrusService) LogDebug(message string, fields map[string]interface{}) {
	if fields != nil {
		l.logger.WithFields(fields).Debug(message)
	} else {
		l.logger.Debug(message)
	}
}

func (l *logrusService) LogWarn(message string, fields map[string]interface{}) {
	if fields != nil {
		l.logger.WithFields(fields).Warn(message)
	} else {
		l.logger.Warn(message)
	}
}
