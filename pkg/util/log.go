package util

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logger. Library code logs through the
// helpers below so every line carries device and interface fields.
var Logger = logrus.New()

// LogLevelEnv names the environment variable read for the initial level.
const LogLevelEnv = "IFCFG_LOG_LEVEL"

func init() {
	Logger.SetOutput(os.Stderr)
	Logger.SetLevel(logrus.WarnLevel)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	applyEnvLevel()
}

// applyEnvLevel sets the level from LogLevelEnv when it holds a valid level.
func applyEnvLevel() {
	lvl := os.Getenv(LogLevelEnv)
	if lvl == "" {
		return
	}
	if err := SetLogLevel(lvl); err != nil {
		Logger.Warnf("Ignoring %s=%q: %v", LogLevelEnv, lvl, err)
	}
}

// SetLogLevel sets the logging level by name ("debug", "warn", ...).
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}

func SetLogOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// SetJSONFormat switches to one JSON object per line.
func SetJSONFormat() {
	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
}

// WithDevice returns a logger with device context
func WithDevice(device string) *logrus.Entry {
	return Logger.WithField("device", device)
}

// WithInterface returns a logger scoped to one interface on one device
func WithInterface(device, intf string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"device":    device,
		"interface": intf,
	})
}

// WithOperation returns a logger with operation context
func WithOperation(operation string) *logrus.Entry {
	return Logger.WithField("operation", operation)
}

func Debugf(format string, args ...interface{}) {
	Logger.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	Logger.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}
