package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8"))
)

// DefaultLogger writes Debug/Info to stdout and Warn/Error to stderr.
// Level tags are coloured when stdout is a terminal.
type DefaultLogger struct {
	stdoutLogger *log.Logger
	stderrLogger *log.Logger
	level        Level
	fields       Fields
	useColors    bool
}

// NewDefaultLogger creates a logger on the process standard streams.
func NewDefaultLogger() *DefaultLogger {
	return NewWriterLogger(os.Stdout, os.Stderr, isatty.IsTerminal(os.Stdout.Fd()))
}

// NewWriterLogger creates a logger on arbitrary writers.
func NewWriterLogger(stdout, stderr io.Writer, colors bool) *DefaultLogger {
	return &DefaultLogger{
		stdoutLogger: log.New(stdout, "", log.LstdFlags),
		stderrLogger: log.New(stderr, "", log.LstdFlags),
		level:        InfoLevel,
		fields:       make(Fields),
		useColors:    colors,
	}
}

func (d *DefaultLogger) tag(level Level) string {
	t := "[" + level.String() + "]"
	if !d.useColors {
		return t
	}
	switch level {
	case DebugLevel:
		return debugStyle.Render(t)
	case InfoLevel:
		return infoStyle.Render(t)
	case WarnLevel:
		return warnStyle.Render(t)
	default:
		return errorStyle.Render(t)
	}
}

func (d *DefaultLogger) formatMessage(level Level, err error, msg string, fields ...Fields) string {
	var b strings.Builder
	b.WriteString(d.tag(level))
	b.WriteByte(' ')
	b.WriteString(msg)
	if err != nil {
		fmt.Fprintf(&b, ": %v", err)
	}

	all := merge(d.fields, fields)
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, all[k])
	}
	return b.String()
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	if level < d.level {
		return
	}
	line := d.formatMessage(level, err, msg, fields...)
	switch level {
	case DebugLevel, InfoLevel:
		d.stdoutLogger.Println(line)
	default:
		d.stderrLogger.Println(line)
	}
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.log(DebugLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.log(InfoLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.log(WarnLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields...)
}

func (d *DefaultLogger) WithFields(fields Fields) Logger {
	return &DefaultLogger{
		stdoutLogger: d.stdoutLogger,
		stderrLogger: d.stderrLogger,
		level:        d.level,
		fields:       merge(d.fields, []Fields{fields}),
		useColors:    d.useColors,
	}
}

func (d *DefaultLogger) SetLevel(level Level) {
	d.level = level
}
