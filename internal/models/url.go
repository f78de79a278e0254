package models

import (
	"slices"
	"time"
)

// MaxCodeLength максимальная длина короткого кода.
const MaxCodeLength = 32

// PreviewImage изображение Open Graph превью.
type PreviewImage struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Preview метаданные целевой страницы, полученные при создании записи.
type Preview struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       PreviewImage `json:"image"`
}

// IsUsable сообщает, достаточно ли данных для показа превью:
// нужна пара заголовок+описание, либо ссылка на изображение.
func (p *Preview) IsUsable() bool {
	if p == nil {
		return false
	}
	return (p.Title != "" && p.Description != "") || p.Image.URL != ""
}

// URL структура модели хранения сокращенной ссылки.
type URL struct {
	ID           string   `json:"_id"`
	Code         string   `json:"code"`
	LongURL      string   `json:"longUrl"`
	IsRandomCode bool     `json:"isRandomCode"`
	Date         int64    `json:"date"`       // unix ms
	Expiration   *int64   `json:"expiration"` // unix ms, nil - бессрочно
	Password     *string  `json:"password"`   // bcrypt хеш
	Preview      *Preview `json:"preview"`
	Flags        []string `json:"flags,omitempty"`
}

// IsExpired истекла ли запись на момент now.
func (u *URL) IsExpired(now time.Time) bool {
	return u.Expiration != nil && *u.Expiration < now.UnixMilli()
}

// IsProtected защищена ли запись паролем.
func (u *URL) IsProtected() bool {
	return u.Password != nil && *u.Password != ""
}

// HasFlag проверяет, отмечал ли модератор запись на удаление.
func (u *URL) HasFlag(moderatorID string) bool {
	return slices.Contains(u.Flags, moderatorID)
}

// ToClient возвращает безопасное для клиента представление записи.
func (u *URL) ToClient() ClientURL {
	return ClientURL{
		ID:           u.ID,
		Code:         u.Code,
		LongURL:      u.LongURL,
		IsRandomCode: u.IsRandomCode,
		Date:         u.Date,
		Expiration:   u.Expiration,
		Password:     u.IsProtected(),
		Preview:      u.Preview,
		Flags:        len(u.Flags),
	}
}

// ClientURL представление записи для клиента. Хеш пароля не раскрывается,
// вместо списка модераторов отдается только их количество.
type ClientURL struct {
	ID           string   `json:"_id"`
	Code         string   `json:"code"`
	LongURL      string   `json:"longUrl"`
	IsRandomCode bool     `json:"isRandomCode"`
	Date         int64    `json:"date"`
	Expiration   *int64   `json:"expiration"`
	Password     bool     `json:"password"`
	Preview      *Preview `json:"preview"`
	Flags        int      `json:"flags"`
}

// ToClientList конвертирует слайс записей в клиентские представления.
func ToClientList(urls []URL) []ClientURL {
	result := make([]ClientURL, len(urls))
	for i := range urls {
		result[i] = urls[i].ToClient()
	}
	return result
}
