// Package config настройки сервиса из переменных окружения и флагов командной строки.
package config

import (
	"flag"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type StorageType string

const (
	StorageTypePostgres StorageType = "postgres"
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypeInMemory StorageType = "inMemory"
)

// S3Config параметры выгрузки резервных копий. Выгрузка включена, если задан Bucket.
type S3Config struct {
	Bucket    string `env:"BUCKET"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Prefix    string `env:"PREFIX" envDefault:"backups/"`
}

type Config struct {
	// Адрес, на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Базовый адрес сервиса, используется для коротких ссылок и защиты от ссылок на самого себя
	BaseURL *url.URL `env:"BASE_URL"`
	// DSN postgres, если задан используется postgres хранилище
	DatabaseDSN string `env:"DATABASE_DSN"`
	// Путь к файлу sqlite
	SqlitePath string `env:"SQLITE_PATH"`
	// Адрес redis для распределенного лимитера. Если пуст, лимитер в памяти
	RedisAddr string `env:"REDIS_ADDR"`

	AdminJWTSecret string   `env:"ADMIN_JWT_SECRET"`
	AdminJWKSURL   string   `env:"ADMIN_JWKS_URL"`
	AdminSubjects  []string `env:"ADMIN_SUBJECTS" envSeparator:","`

	DeleteFlagThreshold int           `env:"DELETE_FLAG_THRESHOLD" envDefault:"2"`
	UseFullWords        bool          `env:"USE_FULL_WORDS" envDefault:"true"`
	PreviewTimeout      time.Duration `env:"PREVIEW_TIMEOUT" envDefault:"5s"`
	RateLimitMax        int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	RateLimitWindow     time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"2m"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Уровень и формат логов. Пустые значения выбираются по GIN_MODE
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	// Файл с таблицами политики (yaml, json, toml)
	PolicyFile string `env:"POLICY_FILE"`

	BackupS3 S3Config `envPrefix:"BACKUP_S3_"`
}

// StorageType выбирает хранилище: postgres приоритетнее sqlite, по умолчанию память.
func (c *Config) StorageType() StorageType {
	switch {
	case c.DatabaseDSN != "":
		return StorageTypePostgres
	case c.SqlitePath != "":
		return StorageTypeSQLite
	default:
		return StorageTypeInMemory
	}
}

// LoadConfig собирает конфигурацию. Переменные окружения приоритетнее флагов.
//
// Параметры:
//   - args: аргументы командной строки без имени программы
//
// Возвращает:
//   - *Config: конфигурация
//   - error: ошибка разбора
func LoadConfig(args []string) (*Config, error) {
	var flagsConfig, envConfig Config

	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	if err := loadFlags(args, &flagsConfig); err != nil {
		return nil, err
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.BaseURL == nil {
		conf.BaseURL = &url.URL{Scheme: "http", Host: conf.ServerAddress}
	}
	if conf.DeleteFlagThreshold < 1 {
		return nil, errors.Errorf("DELETE_FLAG_THRESHOLD must be >= 1, got %d", conf.DeleteFlagThreshold)
	}
	return conf, nil
}

// MustLoadConfig как LoadConfig, но паникует при ошибке.
func MustLoadConfig(args []string) *Config {
	conf, err := LoadConfig(args)
	if err != nil {
		panic(err)
	}
	return conf
}

// loadFlags парсит флаги командной строки.
func loadFlags(args []string, flagsConfig *Config) error {
	fs := flag.NewFlagSet("screws", flag.ContinueOnError)
	fs.StringVar(&flagsConfig.ServerAddress, "a", "localhost:8080", "Адрес сервера")
	fs.StringVar(&flagsConfig.DatabaseDSN, "d", "", "DSN postgres")
	fs.StringVar(&flagsConfig.SqlitePath, "s", "", "Путь к файлу sqlite")

	bDesc := "Базовый адрес сервиса (по умолчанию http://<адрес сервера>)"
	fs.Func("b", bDesc, func(rawURL string) error {
		parsedURL, err := url.ParseRequestURI(rawURL)
		if err != nil {
			return errors.Wrap(err, "failed to parse base url")
		}

		// отсекаем Path и Query, если они заданы в базовом урле.
		flagsConfig.BaseURL = &url.URL{
			Scheme: parsedURL.Scheme,
			Host:   parsedURL.Host,
		}
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse flags")
	}
	return nil
}

// mergeConfig сливает структуры для env и флагов. Env-only поля берутся из envConfig.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	conf := *envConfig
	conf.ServerAddress = defaultIfBlank[string](envConfig.ServerAddress, flagsConfig.ServerAddress)
	conf.BaseURL = defaultIfBlank[*url.URL](envConfig.BaseURL, flagsConfig.BaseURL)
	conf.DatabaseDSN = defaultIfBlank[string](envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	conf.SqlitePath = defaultIfBlank[string](envConfig.SqlitePath, flagsConfig.SqlitePath)
	return &conf
}

func defaultIfBlank[T any](value T, defaultValue T) T {
	if v, ok := any(value).(string); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(*url.URL); ok && v == nil {
		return defaultValue
	}
	return value
}
