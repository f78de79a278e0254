// Package logs сборка zap логгера сервиса.
package logs

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EncodingType определяет формат вывода логов.
type EncodingType string

// LevelType определяет уровень логирования.
type LevelType string

const (
	EncodingTypeConsole EncodingType = "console"
	EncodingTypeJSON    EncodingType = "json"
)

const (
	LevelTypeDebug   LevelType = "debug"
	LevelTypeInfo    LevelType = "info"
	LevelTypeWarning LevelType = "warn"
	LevelTypeError   LevelType = "error"
)

// releaseEnv переменная окружения gin, по которой определяется боевой режим.
const releaseEnv = "GIN_MODE"

// LoggerOptions настройки логгера.
type LoggerOptions struct {
	Level            LevelType      // Уровень логирования
	Encoding         EncodingType   // Формат вывода
	OutputPaths      []string       // Пути вывода логов
	ErrorOutputPaths []string       // Пути вывода ошибок
	InitialFields    map[string]any // Поля каждой записи (сервис, версия сборки)
	// Sampling включает сэмплирование одинаковых сообщений. В боевом режиме включено.
	Sampling bool
}

// WithLevel задает уровень, пустая строка оставляет уровень по умолчанию.
func WithLevel(level string) func(*LoggerOptions) {
	return func(o *LoggerOptions) {
		if level != "" {
			o.Level = LevelType(level)
		}
	}
}

// WithEncoding задает формат, пустая строка оставляет формат по умолчанию.
func WithEncoding(encoding string) func(*LoggerOptions) {
	return func(o *LoggerOptions) {
		if encoding != "" {
			o.Encoding = EncodingType(encoding)
		}
	}
}

// WithField добавляет поле ко всем записям.
func WithField(key string, value any) func(*LoggerOptions) {
	return func(o *LoggerOptions) {
		if o.InitialFields == nil {
			o.InitialFields = make(map[string]any)
		}
		o.InitialFields[key] = value
	}
}

// New создает новый логгер с указанными настройками.
// Вне боевого режима (GIN_MODE != release) пишет в консольном формате с уровнем debug,
// в боевом JSON с уровнем info.
//
// Параметры:
//   - opts: функции для настройки логгера
//
// Возвращает:
//   - *zap.Logger: настроенный логгер
//   - error: ошибка создания логгера
func New(opts ...func(*LoggerOptions)) (*zap.Logger, error) {
	isRelease := os.Getenv(releaseEnv) == "release"

	options := LoggerOptions{
		Level:            LevelTypeDebug,
		Encoding:         EncodingTypeConsole,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    map[string]any{"service": "screws"},
	}
	if isRelease {
		options.Level = LevelTypeInfo
		options.Encoding = EncodingTypeJSON
		options.Sampling = true
	}
	for _, opt := range opts {
		opt(&options)
	}

	lvl, errLvl := zap.ParseAtomicLevel(string(options.Level))
	if errLvl != nil {
		return nil, fmt.Errorf("parse level %q: %w", options.Level, errLvl)
	}

	encoderConf := zap.NewProductionEncoderConfig()
	encoderConf.TimeKey = "ts"
	encoderConf.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConf.EncodeDuration = zapcore.StringDurationEncoder
	if options.Encoding == EncodingTypeConsole {
		encoderConf.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	conf := zap.Config{
		Level:            lvl,
		Development:      !isRelease,
		Encoding:         string(options.Encoding),
		EncoderConfig:    encoderConf,
		OutputPaths:      options.OutputPaths,
		ErrorOutputPaths: options.ErrorOutputPaths,
		InitialFields:    options.InitialFields,
	}
	if options.Sampling {
		conf.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100} //nolint:mnd
	}

	log, err := conf.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// MustNew как New, но паникует при ошибке.
func MustNew(opts ...func(*LoggerOptions)) *zap.Logger {
	log, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return log
}
