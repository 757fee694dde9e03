package platform

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nats-io/nats-server/v2/server"
)

// InitLogger installs a JSON slog handler as the default logger. The level
// comes from LOG_LEVEL and defaults to info.
func InitLogger() {
	slog.SetDefault(newLogger(os.Stdout, os.Getenv("LOG_LEVEL")))
}

func newLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: true, Level: parseLevel(level)})
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// natsLoggerAdapter implements nats-server Logger interface using slog.
type natsLoggerAdapter struct {
	logger *slog.Logger
}

func NewNATSServerLogger(logger *slog.Logger) server.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &natsLoggerAdapter{logger: logger.With("component", "nats")}
}

// Notices are startup chatter; they go to debug.
func (nl *natsLoggerAdapter) Noticef(format string, v ...any) {
	nl.logger.Debug(fmt.Sprintf(format, v...))
}
func (nl *natsLoggerAdapter) Warnf(format string, v ...any) {
	nl.logger.Warn(fmt.Sprintf(format, v...))
}
func (nl *natsLoggerAdapter) Errorf(format string, v ...any) {
	nl.logger.Error(fmt.Sprintf(format, v...))
}
func (nl *natsLoggerAdapter) Fatalf(format string, v ...any) {
	nl.logger.Error("NATS FATAL: " + fmt.Sprintf(format, v...))
}
func (nl *natsLoggerAdapter) Debugf(format string, v ...any) {
	nl.logger.Debug(fmt.Sprintf(format, v...))
}
func (nl *natsLoggerAdapter) Tracef(format string, v ...any) {
	nl.logger.Debug("NATS TRACE: " + fmt.Sprintf(format, v...))
}
