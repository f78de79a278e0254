package urlcodec

import "strings"

// DefaultReservedCodes маршруты и имена страниц, которые не могут быть кодом.
var DefaultReservedCodes = []string{ //nolint:gochecknoglobals
	"",
	"#",
	"api",
	"about",
	"admin",
	"index",
	"screws",
	"support",
	"metrics",
	"ping",
	"tools",
	"unscrew",
}

// ReservedSet множество зарезервированных кодов (в нижнем регистре).
type ReservedSet map[string]struct{}

// NewReservedSet создает множество из списка кодов.
func NewReservedSet(codes []string) ReservedSet {
	set := make(ReservedSet, len(codes))
	for _, c := range codes {
		set[strings.ToLower(c)] = struct{}{}
	}
	return set
}

// IsReserved проверка без учета регистра.
func (r ReservedSet) IsReserved(code string) bool {
	_, ok := r[strings.ToLower(code)]
	return ok
}
