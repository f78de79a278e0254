package sql

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/repositories"
)

// URLRow строка таблицы urls.
type URLRow struct {
	ID           string          `gorm:"primaryKey;size:36"`
	Code         string          `gorm:"uniqueIndex;size:32;not null"`
	LongURL      string          `gorm:"index;not null"`
	IsRandomCode bool            `gorm:"not null;default:false"`
	Date         int64           `gorm:"index;not null"`
	Expiration   *int64          `gorm:"index"`
	Password     *string         `gorm:"size:72"`
	Preview      *models.Preview `gorm:"serializer:json"`
	Flags        []FlagRow       `gorm:"foreignKey:URLID"`
}

// TableName имя таблицы.
func (URLRow) TableName() string { return "urls" }

// FlagRow отметка модератора. Пара (url_id, moderator) уникальна.
type FlagRow struct {
	URLID     string `gorm:"primaryKey;size:36"`
	Moderator string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime:nano"`
}

// TableName имя таблицы.
func (FlagRow) TableName() string { return "url_flags" }

// URLRepo репозиторий ссылок поверх gorm.
type URLRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewURLRepo создает репозиторий.
//
// Параметры:
//   - db: соединение gorm
//   - logger: логгер
//
// Возвращает:
//   - *URLRepo: репозиторий
func NewURLRepo(db *gorm.DB, logger *zap.Logger) *URLRepo {
	return &URLRepo{
		db:     db,
		logger: logger.With(zap.String("module", "repository/sql/url")),
	}
}

// FindOne находит первую запись, подходящую под фильтр.
func (u *URLRepo) FindOne(ctx context.Context, q repositories.Query) (*models.URL, error) {
	urls, err := u.Find(ctx, q, repositories.FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &urls[0], nil
}

// Find возвращает записи, подходящие под фильтр, вместе с флагами.
func (u *URLRepo) Find(ctx context.Context, q repositories.Query, opts repositories.FindOptions) ([]models.URL, error) {
	tx, err := applyQuery(u.db.WithContext(ctx).Model(&URLRow{}), q)
	if err != nil {
		return nil, err
	}

	switch opts.Sort {
	case repositories.SortDateAsc:
		tx = tx.Order("date ASC")
	case repositories.SortDateDesc:
		tx = tx.Order("date DESC")
	case repositories.SortNone:
		tx = tx.Order("code ASC")
	}
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit)
	}

	var rows []URLRow
	err = tx.Preload("Flags", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Find(&rows).Error
	if err != nil {
		u.logger.Error("failed to find records", zap.Error(err))
		return nil, fmt.Errorf("failed to find records: %w", ConvertErrorType(err))
	}

	result := make([]models.URL, len(rows))
	for i := range rows {
		result[i] = rows[i].toModel()
	}
	return result, nil
}

// Insert создает запись. Занятый код возвращает repositories.ErrDuplicateKey.
func (u *URLRepo) Insert(ctx context.Context, url *models.URL) error {
	row := fromModel(url)
	if err := u.db.WithContext(ctx).Omit("Flags").Create(&row).Error; err != nil {
		converted := ConvertErrorType(err)
		if converted != repositories.ErrDuplicateKey { //nolint:errorlint
			u.logger.Error("failed to create record", zap.String("code", url.Code), zap.Error(err))
		}
		return fmt.Errorf("failed to create record: %w", converted)
	}
	return nil
}

// AppendFlag добавляет флаг через INSERT ... ON CONFLICT DO NOTHING,
// затем считает флаги в той же транзакции.
func (u *URLRepo) AppendFlag(ctx context.Context, code, moderatorID string) (repositories.FlagResult, error) {
	var result repositories.FlagResult

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row URLRow
		if err := tx.Select("id").Where("code = ?", code).First(&row).Error; err != nil {
			return err //nolint:wrapcheck
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&FlagRow{URLID: row.ID, Moderator: moderatorID})
		if res.Error != nil {
			return res.Error
		}
		result.Appended = res.RowsAffected == 1

		var count int64
		if err := tx.Model(&FlagRow{}).Where("url_id = ?", row.ID).Count(&count).Error; err != nil {
			return err //nolint:wrapcheck
		}
		result.Count = int(count)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to flag record %s: %w", code, ConvertErrorType(err))
	}
	return result, nil
}

// Delete удаляет записи вместе с их флагами.
func (u *URLRepo) Delete(ctx context.Context, q repositories.Query) (int64, error) {
	var deleted int64

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped, err := applyQuery(tx.Model(&URLRow{}), q)
		if err != nil {
			return err
		}
		var ids []string
		if err = scoped.Pluck("id", &ids).Error; err != nil {
			return err //nolint:wrapcheck
		}
		if len(ids) == 0 {
			return nil
		}
		if err = tx.Where("url_id IN ?", ids).Delete(&FlagRow{}).Error; err != nil {
			return err //nolint:wrapcheck
		}
		res := tx.Where("id IN ?", ids).Delete(&URLRow{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		if err == repositories.ErrUnsupportedQuery { //nolint:errorlint
			return 0, err
		}
		u.logger.Error("failed to delete records", zap.Error(err))
		return 0, fmt.Errorf("failed to delete records: %w", ConvertErrorType(err))
	}
	return deleted, nil
}

// Stats статистика таблицы urls. Размер хранилища берется из PRAGMA страниц SQLite.
func (u *URLRepo) Stats(ctx context.Context) (*models.CollectionStats, error) {
	db := u.db.WithContext(ctx)

	var count int64
	if err := db.Model(&URLRow{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count records: %w", ConvertErrorType(err))
	}

	var size int64
	err := db.Raw(`SELECT COALESCE(SUM(
		LENGTH(id) + LENGTH(code) + LENGTH(long_url) +
		COALESCE(LENGTH(password), 0) + COALESCE(LENGTH(preview), 0) + 16
	), 0) FROM urls`).Scan(&size).Error
	if err != nil {
		return nil, fmt.Errorf("failed to calc size: %w", ConvertErrorType(err))
	}

	var pageCount, pageSize int64
	if err = db.Raw("PRAGMA page_count").Scan(&pageCount).Error; err != nil {
		u.logger.Warn("failed to read page_count", zap.Error(err))
	}
	if err = db.Raw("PRAGMA page_size").Scan(&pageSize).Error; err != nil {
		u.logger.Warn("failed to read page_size", zap.Error(err))
	}

	stats := &models.CollectionStats{
		OK:          true,
		Name:        URLRow{}.TableName(),
		Count:       count,
		Size:        size,
		StorageSize: pageCount * pageSize,
	}
	if count > 0 {
		stats.AvgObjSize = size / count
	}
	return stats, nil
}

// Ping проверяет соединение с базой.
func (u *URLRepo) Ping(ctx context.Context) error {
	sqlDB, err := u.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}

func applyQuery(tx *gorm.DB, q repositories.Query) (*gorm.DB, error) {
	switch q := q.(type) {
	case repositories.ByID:
		return tx.Where("id = ?", q.ID), nil
	case repositories.ByIDs:
		return tx.Where("id IN ?", q.IDs), nil
	case repositories.ByCode:
		return tx.Where("code = ?", q.Code), nil
	case repositories.ByCodes:
		return tx.Where("code IN ?", q.Codes), nil
	case repositories.ByLongURL:
		return tx.Where("long_url = ?", q.LongURL), nil
	case repositories.ByDateRange:
		return applyRange(tx, "date", q.After, q.Before), nil
	case repositories.ByExpiration:
		if q.Null {
			return tx.Where("expiration IS NULL"), nil
		}
		return applyRange(tx.Where("expiration IS NOT NULL"), "expiration", q.After, q.Before), nil
	case repositories.ByFlagCount:
		return tx.Where("(SELECT COUNT(*) FROM url_flags f WHERE f.url_id = urls.id) = ?", q.Count), nil
	case repositories.Reusable:
		return tx.Where(
			"long_url = ? AND is_random_code = ? AND expiration IS NULL AND password IS NULL",
			q.LongURL, true,
		), nil
	case repositories.ExpiredCode:
		return tx.Where("code = ? AND expiration IS NOT NULL AND expiration < ?", q.Code, q.Now), nil
	case repositories.All:
		return tx, nil
	default:
		return nil, repositories.ErrUnsupportedQuery
	}
}

func applyRange(tx *gorm.DB, column string, after, before *int64) *gorm.DB {
	if after != nil {
		tx = tx.Where(column+" > ?", *after)
	}
	if before != nil {
		tx = tx.Where(column+" < ?", *before)
	}
	return tx
}

func (r *URLRow) toModel() models.URL {
	var flags []string
	if len(r.Flags) > 0 {
		flags = make([]string, len(r.Flags))
		for i, f := range r.Flags {
			flags[i] = f.Moderator
		}
	}
	return models.URL{
		ID:           r.ID,
		Code:         r.Code,
		LongURL:      r.LongURL,
		IsRandomCode: r.IsRandomCode,
		Date:         r.Date,
		Expiration:   r.Expiration,
		Password:     r.Password,
		Preview:      r.Preview,
		Flags:        flags,
	}
}

func fromModel(u *models.URL) URLRow {
	return URLRow{
		ID:           u.ID,
		Code:         u.Code,
		LongURL:      u.LongURL,
		IsRandomCode: u.IsRandomCode,
		Date:         u.Date,
		Expiration:   u.Expiration,
		Password:     u.Password,
		Preview:      u.Preview,
	}
}

var _ repositories.URLRepository = (*URLRepo)(nil)
