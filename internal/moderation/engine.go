// Package moderation удаление ссылок по согласию нескольких модераторов.
//
// Запрос модератора на удаление превращается во флаг на записи. Запись удаляется,
// когда количество разных модераторов достигает порога.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/repositories"
)

//go:generate mockgen -source=engine.go -destination=mocks/store.go -package=mocks

// DefaultThreshold порог по умолчанию.
const DefaultThreshold = 2

// Store операции хранилища, нужные движку.
type Store interface {
	Find(ctx context.Context, q repositories.Query, opts repositories.FindOptions) ([]models.URL, error)
	AppendFlag(ctx context.Context, code, moderatorID string) (repositories.FlagResult, error)
	Delete(ctx context.Context, q repositories.Query) (int64, error)
}

// Result какие коды отмечены, а какие удалены. Код попадает не более чем в один список.
type Result struct {
	Flagged []string `json:"flagged"`
	Deleted []string `json:"deleted"`
}

// Engine движок модерации.
type Engine struct {
	store     Store
	threshold int
	logger    *zap.Logger
}

// NewEngine создает движок.
//
// Параметры:
//   - store: хранилище ссылок
//   - threshold: сколько разных модераторов нужно для удаления (<= 1 удаляет сразу)
//   - logger: логгер
//
// Возвращает:
//   - *Engine: движок
func NewEngine(store Store, threshold int, logger *zap.Logger) *Engine {
	return &Engine{
		store:     store,
		threshold: threshold,
		logger:    logger.Named("moderation"),
	}
}

// Threshold текущий порог.
func (e *Engine) Threshold() int {
	return e.threshold
}

// ProcessDeletionRequest обрабатывает запрос модератора на удаление кодов.
//
// Параметры:
//   - ctx: контекст выполнения
//   - codes: коды ссылок
//   - moderatorID: идентификатор модератора
//
// Возвращает:
//   - *Result: отмеченные и удаленные коды
//   - error: ошибка хранилища
func (e *Engine) ProcessDeletionRequest(ctx context.Context, codes []string, moderatorID string) (*Result, error) {
	result := &Result{Flagged: []string{}, Deleted: []string{}}

	codes = uniqueCodes(codes)
	if len(codes) == 0 {
		return result, nil
	}

	records, err := e.store.Find(ctx, repositories.ByCodes{Codes: codes}, repositories.FindOptions{})
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	e.logMissing(codes, records, moderatorID)

	var toDelete []string
	for i := range records {
		rec := &records[i]
		deleteIt, flagged, decideErr := e.decide(ctx, rec, moderatorID)
		if decideErr != nil {
			return nil, decideErr
		}
		switch {
		case deleteIt:
			toDelete = append(toDelete, rec.Code)
		case flagged:
			result.Flagged = append(result.Flagged, rec.Code)
		}
	}

	if len(toDelete) > 0 {
		n, delErr := e.store.Delete(ctx, repositories.ByCodes{Codes: toDelete})
		if delErr != nil {
			return nil, fmt.Errorf("delete records: %w", delErr)
		}
		result.Deleted = toDelete
		e.logger.Info("records deleted",
			zap.Strings("codes", toDelete),
			zap.Int64("deleted", n),
			zap.String("moderator", moderatorID),
		)
	}
	if len(result.Flagged) > 0 {
		e.logger.Info("records flagged", zap.Strings("codes", result.Flagged), zap.String("moderator", moderatorID))
	}

	return result, nil
}

// decide возвращает (удалить, отмечен).
func (e *Engine) decide(ctx context.Context, rec *models.URL, moderatorID string) (bool, bool, error) {
	if e.threshold <= 1 {
		return true, false, nil
	}
	if rec.HasFlag(moderatorID) {
		return false, false, nil
	}

	res, err := e.store.AppendFlag(ctx, rec.Code, moderatorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// запись удалили параллельно
			return false, false, nil
		}
		return false, false, fmt.Errorf("flag record %s: %w", rec.Code, err)
	}
	if !res.Appended {
		return false, false, nil
	}
	if res.Count >= e.threshold {
		return true, false, nil
	}
	return false, true, nil
}

func (e *Engine) logMissing(codes []string, records []models.URL, moderatorID string) {
	if len(records) == len(codes) {
		return
	}
	for _, code := range codes {
		found := slices.ContainsFunc(records, func(u models.URL) bool { return u.Code == code })
		if !found {
			e.logger.Warn("deletion requested for unknown code",
				zap.String("code", code),
				zap.String("moderator", moderatorID),
			)
		}
	}
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	result := make([]string, 0, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		result = append(result, c)
	}
	return result
}
