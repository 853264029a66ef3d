package logging

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
)

// LoggerManager хранит по одному логгеру на компонент
type LoggerManager struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}

var globalManager = &LoggerManager{loggers: make(map[string]*Logger)}

// GetLoggerManager возвращает глобальный реестр логгеров
func GetLoggerManager() *LoggerManager {
	return globalManager
}

// Component возвращает логгер компонента, создавая его при первом обращении.
// Если файл логов открыть не удалось, логгер пишет только в консоль.
func (lm *LoggerManager) Component(component string) *Logger {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if logger, ok := lm.loggers[component]; ok {
		return logger
	}

	logger, err := NewLogger(component)
	if err != nil {
		opts := currentOptions()
		logger = newConsoleLogger(component, opts.Console, opts.ConsoleLevel)
		logger.Warn("файл логов недоступен: %v", err)
	}
	lm.loggers[component] = logger
	return logger
}

// retune переносит консольный вывод и уровень на созданные логгеры.
// Файлы логов у них не появляются задним числом.
func (lm *LoggerManager) retune(console io.Writer, level LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	for _, logger := range lm.loggers {
		logger.mu.Lock()
		logger.consoleLogger = log.New(console, "", log.LstdFlags)
		logger.minConsoleLevel = level
		logger.mu.Unlock()
	}
}

// CloseAll закрывает файлы логов; следующие обращения создадут логгеры заново
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var errs []error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("логгер %s: %w", component, err))
		}
	}
	lm.loggers = make(map[string]*Logger)
	return errors.Join(errs...)
}

// GetComponentLogger возвращает логгер произвольного компонента
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().Component(component)
}

// GetStorageLogger - хранилища раскладок
func GetStorageLogger() *Logger {
	return GetComponentLogger("storage")
}

func GetConfigLogger() *Logger {
	return GetComponentLogger("config")
}

func GetCLILogger() *Logger {
	return GetComponentLogger("cli")
}
