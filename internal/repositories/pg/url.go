// Package pg реализация репозитория ссылок для PostgreSQL поверх pgxpool.
//
// Ошибки pgx преобразуются в ошибки уровня репозитория через convertErrType:
//   - uniqueViolationCode (23505) -> repositories.ErrDuplicateKey
//   - pgx.ErrNoRows -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/repositories"
)

const uniqueViolationCode = "23505"

const selectColumns = `
	u.id::text, u.code, u.long_url, u.is_random_code, u.date, u.expiration, u.password, u.preview,
	ARRAY(SELECT f.moderator FROM url_flags f WHERE f.url_id = u.id ORDER BY f.created_at, f.moderator)`

// URLRepo репозиторий ссылок в PostgreSQL.
type URLRepo struct {
	conn   *pgxpool.Pool
	logger *zap.Logger
}

// NewURLRepo создает репозиторий.
//
// Параметры:
//   - conn: пул подключений
//   - logger: логгер
//
// Возвращает:
//   - *URLRepo: репозиторий
func NewURLRepo(conn *pgxpool.Pool, logger *zap.Logger) *URLRepo {
	return &URLRepo{
		conn:   conn,
		logger: logger.With(zap.String("module", "repository/pg/url")),
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

// Find возвращает записи, подходящие под фильтр.
func (u *URLRepo) Find(ctx context.Context, q repositories.Query, opts repositories.FindOptions) ([]models.URL, error) {
	where, args, err := buildWhere(q)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(selectColumns)
	sb.WriteString(" FROM urls u WHERE ")
	sb.WriteString(where)
	switch opts.Sort {
	case repositories.SortDateAsc:
		sb.WriteString(" ORDER BY u.date ASC")
	case repositories.SortDateDesc:
		sb.WriteString(" ORDER BY u.date DESC")
	case repositories.SortNone:
		sb.WriteString(" ORDER BY u.code ASC")
	}
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := u.conn.Query(ctx, sb.String(), args...)
	if err != nil {
		u.logger.Error("failed to query records", zap.Error(err))
		return nil, fmt.Errorf("failed to find records: %w", convertErrType(err))
	}

	urls, err := pgx.CollectRows(rows, scanURL)
	if err != nil {
		u.logger.Error("failed to scan records", zap.Error(err))
		return nil, fmt.Errorf("failed to scan records: %w", convertErrType(err))
	}
	return urls, nil
}

// Insert создает запись. Занятый код возвращает repositories.ErrDuplicateKey.
func (u *URLRepo) Insert(ctx context.Context, url *models.URL) error {
	_, err := u.conn.Exec(ctx, `
		INSERT INTO urls (id, code, long_url, is_random_code, date, expiration, password, preview)
		VALUES ($1::text::uuid, $2, $3, $4, $5, $6, $7, $8)`,
		url.ID, url.Code, url.LongURL, url.IsRandomCode, url.Date, url.Expiration, url.Password, url.Preview,
	)
	if err != nil {
		converted := convertErrType(err)
		if !errors.Is(converted, repositories.ErrDuplicateKey) {
			u.logger.Error("failed to create record", zap.String("code", url.Code), zap.Error(err))
		}
		return fmt.Errorf("failed to create record: %w", converted)
	}
	return nil
}

// AppendFlag добавляет флаг (если его нет) и возвращает итоговое количество флагов.
// Строка записи блокируется на время транзакции, поэтому параллельные модераторы
// видят счетчик с учетом друг друга.
func (u *URLRepo) AppendFlag(ctx context.Context, code, moderatorID string) (repositories.FlagResult, error) {
	var result repositories.FlagResult

	err := pgx.BeginFunc(ctx, u.conn, func(tx pgx.Tx) error {
		var id string
		if err := tx.QueryRow(ctx,
			"SELECT id::text FROM urls WHERE code = $1 FOR UPDATE", code,
		).Scan(&id); err != nil {
			return err //nolint:wrapcheck
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO url_flags (url_id, moderator) VALUES ($1::text::uuid, $2)
			ON CONFLICT (url_id, moderator) DO NOTHING`,
			id, moderatorID,
		)
		if err != nil {
			return err //nolint:wrapcheck
		}
		result.Appended = tag.RowsAffected() == 1

		return tx.QueryRow(ctx, //nolint:wrapcheck
			"SELECT COUNT(*) FROM url_flags WHERE url_id = $1::text::uuid", id,
		).Scan(&result.Count)
	})
	if err != nil {
		return result, fmt.Errorf("failed to flag record %s: %w", code, convertErrType(err))
	}
	return result, nil
}

// Delete удаляет записи. Флаги удаляются каскадно.
func (u *URLRepo) Delete(ctx context.Context, q repositories.Query) (int64, error) {
	where, args, err := buildWhere(q)
	if err != nil {
		return 0, err
	}

	tag, err := u.conn.Exec(ctx, "DELETE FROM urls u WHERE "+where, args...)
	if err != nil {
		u.logger.Error("failed to delete records", zap.Error(err))
		return 0, fmt.Errorf("failed to delete records: %w", convertErrType(err))
	}
	return tag.RowsAffected(), nil
}

// Stats статистика таблицы urls.
func (u *URLRepo) Stats(ctx context.Context) (*models.CollectionStats, error) {
	var stats = models.CollectionStats{OK: true, Name: "urls"}

	err := u.conn.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM urls),
			COALESCE((SELECT SUM(pg_column_size(t.*)) FROM urls t), 0)::bigint,
			pg_total_relation_size('urls')`,
	).Scan(&stats.Count, &stats.Size, &stats.StorageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", convertErrType(err))
	}
	if stats.Count > 0 {
		stats.AvgObjSize = stats.Size / stats.Count
	}
	return &stats, nil
}

// Ping проверяет соединение.
func (u *URLRepo) Ping(ctx context.Context) error {
	if err := u.conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

func scanURL(row pgx.CollectableRow) (models.URL, error) {
	var url models.URL
	err := row.Scan(
		&url.ID, &url.Code, &url.LongURL, &url.IsRandomCode, &url.Date,
		&url.Expiration, &url.Password, &url.Preview, &url.Flags,
	)
	if len(url.Flags) == 0 {
		url.Flags = nil
	}
	return url, err //nolint:wrapcheck
}

// buildWhere транслирует фильтр в условие WHERE с позиционными аргументами.
func buildWhere(q repositories.Query) (string, []any, error) {
	switch q := q.(type) {
	case repositories.ByID:
		return "u.id::text = $1", []any{q.ID}, nil
	case repositories.ByIDs:
		return "u.id::text = ANY($1)", []any{q.IDs}, nil
	case repositories.ByCode:
		return "u.code = $1", []any{q.Code}, nil
	case repositories.ByCodes:
		return "u.code = ANY($1)", []any{q.Codes}, nil
	case repositories.ByLongURL:
		return "u.long_url = $1", []any{q.LongURL}, nil
	case repositories.ByDateRange:
		where, args := rangeWhere("u.date", q.After, q.Before)
		return where, args, nil
	case repositories.ByExpiration:
		if q.Null {
			return "u.expiration IS NULL", nil, nil
		}
		where, args := rangeWhere("u.expiration", q.After, q.Before)
		return "u.expiration IS NOT NULL AND " + where, args, nil
	case repositories.ByFlagCount:
		return "(SELECT COUNT(*) FROM url_flags f WHERE f.url_id = u.id) = $1", []any{q.Count}, nil
	case repositories.Reusable:
		return "u.long_url = $1 AND u.is_random_code AND u.expiration IS NULL AND u.password IS NULL",
			[]any{q.LongURL}, nil
	case repositories.ExpiredCode:
		return "u.code = $1 AND u.expiration IS NOT NULL AND u.expiration < $2", []any{q.Code, q.Now}, nil
	case repositories.All:
		return "TRUE", nil, nil
	default:
		return "", nil, repositories.ErrUnsupportedQuery
	}
}

func rangeWhere(column string, after, before *int64) (string, []any) {
	var conds []string
	var args []any
	if after != nil {
		args = append(args, *after)
		conds = append(conds, fmt.Sprintf("%s > $%d", column, len(args)))
	}
	if before != nil {
		args = append(args, *before)
		conds = append(conds, fmt.Sprintf("%s < $%d", column, len(args)))
	}
	if len(conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(conds, " AND "), args
}

func convertErrType(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode:
		return repositories.ErrDuplicateKey
	case errors.Is(err, pgx.ErrNoRows):
		return repositories.ErrNotFound
	default:
		return repositories.ErrUnknown
	}
}

var _ repositories.URLRepository = (*URLRepo)(nil)
