package models

import (
	"fmt"
	"math"
	"time"
)

// CollectionStats агрегированная информация о хранилище ссылок.
type CollectionStats struct {
	OK          bool   `json:"ok"`
	Name        string `json:"name"`
	Count       int64  `json:"count"`
	Size        int64  `json:"size"`
	StorageSize int64  `json:"storageSize"`
	AvgObjSize  int64  `json:"avgObjSize"`
}

// Backup полная выгрузка хранилища.
type Backup struct {
	Date time.Time `json:"date"`
	URLs []URL     `json:"urls"`
}

// FormatDuration форматирует оставшееся время в виде "5 minutes", "1 day".
func FormatDuration(d time.Duration) string {
	var amount float64
	var unit string
	switch {
	case d < time.Minute:
		amount, unit = d.Seconds(), "second"
	case d < time.Hour:
		amount, unit = d.Minutes(), "minute"
	case d < 24*time.Hour:
		amount, unit = d.Hours(), "hour"
	default:
		amount, unit = d.Hours()/24, "day" //nolint:mnd
	}

	n := int64(math.Round(amount))
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
