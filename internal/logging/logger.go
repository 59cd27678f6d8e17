package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает уровень из конфигурации. Пустая строка - INFO.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("неизвестный уровень логирования: %q", s)
}

// Logger пишет сообщения компонента в консоль и, если открыт, в файл
type Logger struct {
	component       string
	consoleLogger   *log.Logger
	fileLogger      *log.Logger
	file            *os.File
	minConsoleLevel LogLevel
	minFileLevel    LogLevel
	mu              sync.Mutex
}

var (
	logDir        = "logs"
	defaultLogger = NewConsoleLogger("server", INFO)
)

// SetLogDir задает каталог для файлов логов
func SetLogDir(dir string) {
	logDir = dir
}

// NewLogger создает логгер компонента с файлом logs/<component>_<время>.log
func NewLogger(component string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории %s: %w", logDir, err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(logDir, fmt.Sprintf("%s_%s.log", component, timestamp))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания файла логов: %w", err)
	}

	return &Logger{
		component:       component,
		consoleLogger:   log.New(os.Stdout, "", log.LstdFlags),
		fileLogger:      log.New(file, "", log.LstdFlags),
		file:            file,
		minConsoleLevel: INFO,
		minFileLevel:    TRACE,
	}, nil
}

// NewConsoleLogger создает логгер без файла
func NewConsoleLogger(component string, level LogLevel) *Logger {
	return NewWriterLogger(component, os.Stdout, level)
}

// NewWriterLogger создает логгер, пишущий в произвольный writer (удобно в тестах)
func NewWriterLogger(component string, w io.Writer, level LogLevel) *Logger {
	return &Logger{
		component:       component,
		consoleLogger:   log.New(w, "", log.LstdFlags),
		minConsoleLevel: level,
		minFileLevel:    ERROR,
	}
}

// SetLevels задает минимальные уровни для консоли и файла
func (l *Logger) SetLevels(console, file LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minConsoleLevel = console
	l.minFileLevel = file
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLogger = nil
	return err
}

func (l *Logger) Trace(format string, args ...interface{}) { l.logMessage(TRACE, format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.logMessage(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.logMessage(INFO, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logMessage(WARN, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.logMessage(ERROR, format, args...) }

// logMessage внутренняя функция для логирования
func (l *Logger) logMessage(level LogLevel, format string, args ...interface{}) {
	if l == nil {
		return
	}

	message := fmt.Sprintf("[%s] [%s] %s", level.String(), l.component, fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLogger != nil && level >= l.minFileLevel {
		l.fileLogger.Println(message)
	}
	if level >= l.minConsoleLevel {
		l.consoleLogger.Println(message)
	}
}

// InitDefaultLogger заменяет логгер по умолчанию файловым логгером компонента
func InitDefaultLogger(component string) error {
	logger, err := NewLogger(component)
	if err != nil {
		return err
	}
	defaultLogger = logger
	return nil
}

// CloseDefaultLogger закрывает логгер по умолчанию
func CloseDefaultLogger() {
	if defaultLogger != nil {
		defaultLogger.Close()
	}
}

// Default возвращает логгер по умолчанию
func Default() *Logger {
	return defaultLogger
}

// Trace логирует сообщение уровня TRACE
func Trace(format string, args ...interface{}) { defaultLogger.Trace(format, args...) }

// Debug логирует сообщение уровня DEBUG
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }

// Info логирует сообщение уровня INFO
func Info(format string, args ...interface{}) { defaultLogger.Info(format, args...) }

// Warn логирует сообщение уровня WARN
func Warn(format string, args ...interface{}) { defaultLogger.Warn(format, args...) }

// Error логирует сообщение уровня ERROR
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
