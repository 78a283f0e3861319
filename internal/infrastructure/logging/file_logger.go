package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// FileLogger реализация логгера в файлы журнала на базе zerolog.
// Все сообщения пишутся в журнал вывода, предупреждения и ошибки
// дополнительно попадают в журнал ошибок.
type FileLogger struct {
	files  []*os.File
	logger zerolog.Logger
}

// Options параметры файлового логгера
type Options struct {
	OutputPath string
	ErrorPath  string
	LogLevel   string
	LogToFile  bool
	// Console дублирует журнал, nil отключает вывод в консоль
	Console io.Writer
}

// NewFileLogger создает новый файловый логгер
func NewFileLogger(opts Options) (*FileLogger, error) {
	l := &FileLogger{}
	var writers []io.Writer

	if opts.LogToFile {
		output, err := openLogFile(opts.OutputPath)
		if err != nil {
			return nil, err
		}
		l.files = append(l.files, output)
		writers = append(writers, plainWriter(output))

		if opts.ErrorPath != "" {
			errorFile, err := openLogFile(opts.ErrorPath)
			if err != nil {
				l.Close()
				return nil, err
			}
			l.files = append(l.files, errorFile)
			writers = append(writers, &minLevelWriter{
				w:     zerolog.LevelWriterAdapter{Writer: plainWriter(errorFile)},
				level: zerolog.WarnLevel,
			})
		}
	}

	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.TimeOnly})
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	l.logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(opts.LogLevel)).
		With().
		Timestamp().
		Logger()

	return l, nil
}

// Debug логирует отладочное сообщение
func (l *FileLogger) Debug(format string, args ...interface{}) {
	l.logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// Info логирует информационное сообщение
func (l *FileLogger) Info(format string, args ...interface{}) {
	l.logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Warning логирует предупреждение
func (l *FileLogger) Warning(format string, args ...interface{}) {
	l.logger.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error логирует ошибку
func (l *FileLogger) Error(format string, args ...interface{}) {
	l.logger.Error().Msg(fmt.Sprintf(format, args...))
}

// Success логирует успешное выполнение
func (l *FileLogger) Success(format string, args ...interface{}) {
	l.logger.Info().Bool("success", true).Msg(fmt.Sprintf(format, args...))
}

// Close закрывает файлы журнала
func (l *FileLogger) Close() error {
	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.files = nil
	return firstErr
}

// ParseLevel переводит уровень из конфигурации в уровень zerolog
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warning", "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл журнала %s: %w", path, err)
	}
	return f, nil
}

// plainWriter форматирует записи в читаемый текст без цветов
func plainWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.DateTime,
	}
}

// minLevelWriter пропускает только записи не ниже заданного уровня
type minLevelWriter struct {
	w     zerolog.LevelWriter
	level zerolog.Level
}

func (m *minLevelWriter) Write(p []byte) (int, error) {
	return m.w.Write(p)
}

func (m *minLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < m.level {
		return len(p), nil
	}
	return m.w.WriteLevel(level, p)
}
