package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options параметры ротации файла логов
type Options struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	JSON       bool
}

var defaultOptions = Options{
	MaxSizeMB:  100,
	MaxBackups: 5,
	MaxAgeDays: 30,
}

// Logger логгер сервиса с printf-подобным API.
// Пишет в stdout и, если задан файл, в файл с ротацией.
type Logger struct {
	entry *logrus.Entry
	file  *lumberjack.Logger
}

// New создает логгер. Пустой file означает вывод только в stdout.
func New(file, level string) (*Logger, error) {
	return NewWithOptions(file, level, defaultOptions)
}

func NewWithOptions(file, level string, opts Options) (*Logger, error) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	base := logrus.New()
	base.SetLevel(lvl)

	if opts.JSON {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   true,
		})
	}

	l := &Logger{}
	if file != "" {
		l.file = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		base.SetOutput(io.MultiWriter(os.Stdout, l.file))
	} else {
		base.SetOutput(os.Stdout)
	}

	l.entry = logrus.NewEntry(base)
	return l, nil
}

// NewWithWriter логгер поверх произвольного writer, удобно в тестах
func NewWithWriter(w io.Writer, level logrus.Level) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return &Logger{entry: logrus.NewEntry(base)}
}

// With возвращает логгер с дополнительным полем
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value), file: l.file}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.entry.Fatalf(format, v...)
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
