// Package console is the terminal backend of the logger facade.
package console

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Output formats accepted by ConsoleLoggerParams.Format.
const (
	FormatText   = "text"
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

type ConsoleLogger struct {
	logger *log.Logger
}

type ConsoleLoggerParams struct {
	Debug bool
	// Output defaults to stderr; stdout belongs to the report.
	Output io.Writer
	Prefix string
	// Format is one of FormatText, FormatLogfmt or FormatJSON. Unknown
	// values fall back to text.
	Format      string
	NoTimestamp bool
}

func formatter(name string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatJSON:
		return log.JSONFormatter
	case FormatLogfmt:
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

func NewConsoleLogger(params ConsoleLoggerParams) *ConsoleLogger {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	out := params.Output
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleLogger{
		logger: log.NewWithOptions(out, log.Options{
			ReportTimestamp: !params.NoTimestamp,
			Level:           level,
			Prefix:          params.Prefix,
			Formatter:       formatter(params.Format),
		}),
	}
}

// Log prints regardless of the configured level.
func (c *ConsoleLogger) Log(message string, keyvals ...any) { c.logger.Print(message, keyvals...) }

func (c *ConsoleLogger) Debug(message string, keyvals ...any) { c.logger.Debug(message, keyvals...) }
func (c *ConsoleLogger) Info(message string, keyvals ...any)  { c.logger.Info(message, keyvals...) }
func (c *ConsoleLogger) Warn(message string, keyvals ...any)  { c.logger.Warn(message, keyvals...) }
func (c *ConsoleLogger) Error(message string, keyvals ...any) { c.logger.Error(message, keyvals...) }

// Fatal exits the process with status 1 after logging.
func (c *ConsoleLogger) Fatal(message string, keyvals ...any) { c.logger.Fatal(message, keyvals...) }
