// Package bmeta сведения о сборке, задаваемые через -ldflags.
package bmeta

import (
	"fmt"

	"go.uber.org/zap"
)

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Info версия, дата и коммит сборки.
type Info struct {
	Version string
	Date    string
	Commit  string
}

// New заполняет пустые значения заглушкой N/A.
func New(version, date, commit string) Info {
	return Info{
		Version: orDefault(version),
		Date:    orDefault(date),
		Commit:  orDefault(commit),
	}
}

// String однострочное представление для -version.
func (i Info) String() string {
	return fmt.Sprintf("screws %s (commit %s, built %s)", i.Version, i.Commit, i.Date)
}

// Fields поля для журнала.
func (i Info) Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", i.Version),
		zap.String("build_date", i.Date),
		zap.String("commit", i.Commit),
	}
}

func orDefault(v string) string {
	if v == "" {
		return defaultBuildMeta
	}
	return v
}
