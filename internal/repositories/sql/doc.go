// Package sql предоставляет реализацию репозитория ссылок поверх gorm (SQLite).
//
// Флаги модераторов хранятся в отдельной таблице url_flags с составным первичным
// ключом (url_id, moderator), поэтому добавление флага атомарно и не дублируется.
//
// Ошибки gorm преобразуются в общие ошибки уровня репозитория с помощью ConvertErrorType:
//   - gorm.ErrDuplicatedKey -> repositories.ErrDuplicateKey
//   - gorm.ErrRecordNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package sql
