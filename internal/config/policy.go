package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/fsdevblog/screws/internal/tracking"
	"github.com/fsdevblog/screws/internal/urlcodec"
)

// DefaultSecretURLs ссылки, на которые переходим без промежуточной страницы.
var DefaultSecretURLs = []string{"youtube.com/watch?v=dQw4w9WgXcQ"}

// Policy неизменяемые таблицы политики, загружаются при старте.
type Policy struct {
	// Подстроки long url, для которых переход выполняется сразу
	SecretURLs []string `mapstructure:"secret_urls"`
	// Домены, на которые нельзя сокращать ссылки
	BlockedDomains []string `mapstructure:"blocked_domains"`
	// Зарезервированные коды
	ReservedCodes []string `mapstructure:"reserved_codes"`
	// Параметры отслеживания. Префикс re: для регулярных выражений
	TrackingParams []string `mapstructure:"tracking_params"`
}

// DefaultPolicy политика по умолчанию.
func DefaultPolicy() *Policy {
	return &Policy{
		SecretURLs:     append([]string(nil), DefaultSecretURLs...),
		BlockedDomains: []string{},
		ReservedCodes:  append([]string(nil), urlcodec.DefaultReservedCodes...),
		TrackingParams: append([]string(nil), tracking.DefaultParams...),
	}
}

// LoadPolicy читает политику из файла. Пустой путь дает политику по умолчанию,
// отсутствующие в файле таблицы тоже берутся по умолчанию. Формат определяется по расширению.
//
// Параметры:
//   - path: путь к файлу
//
// Возвращает:
//   - *Policy: политика
//   - error: ошибка чтения или разбора
func LoadPolicy(path string) (*Policy, error) {
	def := DefaultPolicy()

	v := viper.New()
	v.SetDefault("secret_urls", def.SecretURLs)
	v.SetDefault("blocked_domains", def.BlockedDomains)
	v.SetDefault("reserved_codes", def.ReservedCodes)
	v.SetDefault("tracking_params", def.TrackingParams)

	v.SetEnvPrefix("POLICY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read policy file %s", path)
		}
	}

	var p Policy
	if err := v.Unmarshal(&p); err != nil {
		return nil, errors.Wrap(err, "decode policy")
	}
	for i, d := range p.BlockedDomains {
		p.BlockedDomains[i] = strings.ToLower(strings.TrimSpace(d))
	}
	return &p, nil
}
