package logging

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// Factory создаёт логгер компонента
type Factory func(component string) (*Logger, error)

// LoggerManager выдаёт логгеры компонентов и закрывает их при выходе
type LoggerManager struct {
	mu      sync.Mutex
	loggers map[string]*Logger
	factory Factory
	level   LogLevel
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// NewLoggerManager создаёт менеджер с заданной фабрикой
func NewLoggerManager(factory Factory) *LoggerManager {
	return &LoggerManager{
		loggers: make(map[string]*Logger),
		factory: factory,
		level:   INFO,
	}
}

// GetLoggerManager возвращает глобальный менеджер; логгеры пишут в logs/
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = NewLoggerManager(NewLogger)
	})
	return globalManager
}

// Get возвращает логгер компонента. Если файл создать не удалось,
// отдаёт консольный логгер без файла.
func (lm *LoggerManager) Get(component string) *Logger {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if logger, ok := lm.loggers[component]; ok {
		return logger
	}

	logger, err := lm.factory(component)
	if err != nil {
		fmt.Fprintf(os.Stderr, "логгер %s без файла: %v\n", component, err)
		logger = NewWriterLogger(component, os.Stdout, lm.level)
	}
	logger.SetConsoleLevel(lm.level)
	lm.loggers[component] = logger
	return logger
}

// SetConsoleLevel меняет уровень консоли для текущих и будущих логгеров
func (lm *LoggerManager) SetConsoleLevel(level LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.level = level
	for _, logger := range lm.loggers {
		logger.SetConsoleLevel(level)
	}
}

// CloseAll закрывает все логгеры и забывает их
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var errs []error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", component, err))
		}
	}
	lm.loggers = make(map[string]*Logger)
	return errors.Join(errs...)
}

// GetComponentLogger возвращает логгер компонента из глобального менеджера
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().Get(component)
}
