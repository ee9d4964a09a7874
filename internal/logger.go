package internal

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/grpclog"
)

var once sync.Once
var logger *logrus.Logger

// GetLogger returns a singleton logger correctly configured for zep-ner
func GetLogger() *logrus.Logger {
	// Use a singleton so we can update log level once config is loaded
	once.Do(func() {
		logger = logrus.New()

		logger.Out = os.Stdout
		logger.SetLevel(logrus.WarnLevel)

		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: false,
			FullTimestamp: true,
			PadLevelText:  true,
		})
	})

	return logger
}

func SetLogLevel(level logrus.Level) {
	GetLogger().SetLevel(level)
}

// SetLogFormat switches between the default text formatter and JSON output.
func SetLogFormat(format string) {
	if format == "json" {
		GetLogger().SetFormatter(&logrus.JSONFormatter{})
	}
}

var _ grpclog.LoggerV2 = &GRPCLogrus{}

// NewGRPCLogrus returns a new GRPCLogrus instance. This is a wrapper
// around logrus.Logger that implements grpclog.LoggerV2 so that
// grpc-go's internal logging ends up in the same stream as ours.
// grpc's INFO chatter is demoted to DEBUG.
func NewGRPCLogrus(logger *logrus.Logger) *GRPCLogrus {
	return &GRPCLogrus{
		Logger: logger,
	}
}

type GRPCLogrus struct {
	*logrus.Logger
}

func (l *GRPCLogrus) entry() *logrus.Entry {
	return l.WithField("component", "grpc")
}

func (l *GRPCLogrus) Info(args ...interface{}) {
	l.entry().Debug(args...)
}

func (l *GRPCLogrus) Infoln(args ...interface{}) {
	l.entry().Debugln(args...)
}

func (l *GRPCLogrus) Infof(format string, args ...interface{}) {
	l.entry().Debugf(format, args...)
}

func (l *GRPCLogrus) Warning(args ...interface{}) {
	l.entry().Warn(args...)
}

func (l *GRPCLogrus) Warningln(args ...interface{}) {
	l.entry().Warnln(args...)
}

func (l *GRPCLogrus) Warningf(format string, args ...interface{}) {
	l.entry().Warnf(format, args...)
}

func (l *GRPCLogrus) Error(args ...interface{}) {
	l.entry().Error(args...)
}

func (l *GRPCLogrus) Errorln(args ...interface{}) {
	l.entry().Errorln(args...)
}

func (l *GRPCLogrus) Errorf(format string, args ...interface{}) {
	l.entry().Errorf(format, args...)
}

func (l *GRPCLogrus) Fatal(args ...interface{}) {
	l.entry().Fatal(args...)
}

func (l *GRPCLogrus) Fatalln(args ...interface{}) {
	l.entry().Fatalln(args...)
}

func (l *GRPCLogrus) Fatalf(format string, args ...interface{}) {
	l.entry().Fatalf(format, args...)
}

// V reports whether grpc verbosity level l is enabled. Only level 0 is
// logged, and only when debug logging is on.
func (l *GRPCLogrus) V(level int) bool {
	return level == 0 && l.IsLevelEnabled(logrus.DebugLevel)
}
