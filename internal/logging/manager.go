package logging

import (
	"fmt"
	"sync"
)

// LoggerManager управляет логгерами отдельных компонентов (world, storage,
// mapdata...) и общими уровнями для них
type LoggerManager struct {
	mu           sync.RWMutex
	loggers      map[string]*Logger
	consoleLevel LogLevel
	fileLevel    LogLevel
	useFiles     bool
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = &LoggerManager{
			loggers:      make(map[string]*Logger),
			consoleLevel: INFO,
			fileLevel:    TRACE,
		}
	})
	return globalManager
}

// Configure задает уровни для новых и уже созданных логгеров.
// useFiles=false оставляет только вывод в консоль.
func (lm *LoggerManager) Configure(consoleLevel, fileLevel LogLevel, useFiles bool) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.consoleLevel = consoleLevel
	lm.fileLevel = fileLevel
	lm.useFiles = useFiles
	for _, logger := range lm.loggers {
		logger.SetLevels(consoleLevel, fileLevel)
	}
}

// GetLogger возвращает логгер для компонента, создавая его при необходимости
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.RLock()
	if logger, exists := lm.loggers[component]; exists {
		lm.mu.RUnlock()
		return logger, nil
	}
	lm.mu.RUnlock()

	lm.mu.Lock()
	defer lm.mu.Unlock()

	// Проверяем еще раз на случай гонки
	if logger, exists := lm.loggers[component]; exists {
		return logger, nil
	}

	var logger *Logger
	if lm.useFiles {
		var err error
		logger, err = NewLogger(component)
		if err != nil {
			return nil, fmt.Errorf("не удалось создать логгер %s: %w", component, err)
		}
	} else {
		logger = NewConsoleLogger(component, lm.consoleLevel)
	}
	logger.SetLevels(lm.consoleLevel, lm.fileLevel)

	lm.loggers[component] = logger
	return logger, nil
}

// MustGetLogger возвращает логгер или консольный fallback при ошибке
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err != nil {
		return NewConsoleLogger(component, INFO)
	}
	return logger
}

// CloseAll закрывает все логгеры
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var lastErr error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			lastErr = fmt.Errorf("не удалось закрыть логгер %s: %w", component, err)
		}
	}

	lm.loggers = make(map[string]*Logger)
	return lastErr
}

// GetComponentLogger - удобная функция для получения логгера компонента
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().MustGetLogger(component)
}
