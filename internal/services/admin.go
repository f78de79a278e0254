package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/moderation"
	"github.com/fsdevblog/screws/internal/repositories"
)

// SearchLimit максимальное число записей в выдаче поиска.
const SearchLimit = 50

// AdminService операции панели администратора.
type AdminService struct {
	repo     URLRepository
	engine   *moderation.Engine
	uploader BackupUploader
	now      func() time.Time
	logger   *zap.Logger
}

// NewAdminService создает сервис.
//
// Параметры:
//   - repo: хранилище ссылок
//   - threshold: число флагов разных модераторов для удаления, при <= 1 запись удаляется сразу
//   - uploader: выгрузка резервных копий, может быть nil
//   - logger: логгер
func NewAdminService(repo URLRepository, threshold int, uploader BackupUploader, logger *zap.Logger) *AdminService {
	logger = logger.Named("admin_service")
	return &AdminService{
		repo:     repo,
		engine:   moderation.NewEngine(repo, threshold, logger),
		uploader: uploader,
		now:      time.Now,
		logger:   logger,
	}
}

// Stats сводка по хранилищу.
func (s *AdminService) Stats(ctx context.Context) (*models.CollectionStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, convertErrorType(err)
	}
	return stats, nil
}

// Search ищет записи по полю. Выдача отсортирована от новых к старым, не более SearchLimit.
//
// Возвращает:
//   - []models.URL: записи
//   - error: ValidationError, ErrRecordNotFound если ничего не нашлось
func (s *AdminService) Search(ctx context.Context, field, query string) ([]models.URL, error) {
	q, err := ParseQuery(field, query, s.now())
	if err != nil {
		return nil, err
	}

	urls, err := s.repo.Find(ctx, q, repositories.FindOptions{Sort: repositories.SortDateDesc, Limit: SearchLimit})
	if err != nil {
		return nil, convertErrorType(err)
	}
	if len(urls) == 0 {
		return nil, ErrRecordNotFound
	}
	return urls, nil
}

// Delete запрос модератора на удаление кодов.
//
// Параметры:
//   - ctx: контекст выполнения
//   - codes: коды
//   - moderatorID: идентификатор модератора
//
// Возвращает:
//   - *moderation.Result: какие коды отмечены, а какие удалены
//   - error: ValidationError, ErrStoreUnavailable
func (s *AdminService) Delete(ctx context.Context, codes []string, moderatorID string) (*moderation.Result, error) {
	if len(codes) == 0 {
		return nil, newValidationError("no codes supplied")
	}
	res, err := s.engine.ProcessDeletionRequest(ctx, codes, moderatorID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, convertErrorType(err)
	}
	return res, nil
}

// Backup полная выгрузка записей в порядке создания. Если настроена выгрузка во
// внешнее хранилище, копия отправляется туда, ошибка выгрузки только логируется.
//
// Параметры:
//   - ctx: контекст выполнения
//   - adminName: кто запросил копию
//
// Возвращает:
//   - *models.Backup: копия
//   - string: ключ объекта во внешнем хранилище, пустой если выгрузки не было
//   - error: ErrRecordNotFound для пустого хранилища, ErrStoreUnavailable
func (s *AdminService) Backup(ctx context.Context, adminName string) (*models.Backup, string, error) {
	s.logger.Info("admin activity: database backup downloaded", zap.String("admin", adminName))

	urls, err := s.repo.Find(ctx, repositories.All{}, repositories.FindOptions{Sort: repositories.SortDateAsc})
	if err != nil {
		return nil, "", convertErrorType(err)
	}
	if len(urls) == 0 {
		return nil, "", ErrRecordNotFound
	}

	b := &models.Backup{Date: s.now().UTC(), URLs: urls}
	if s.uploader == nil {
		return b, "", nil
	}

	key, err := s.uploader.Upload(ctx, b)
	if err != nil {
		s.logger.Error("backup upload failed", zap.Error(err))
		return b, "", nil
	}
	return b, key, nil
}
