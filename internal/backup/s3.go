// Package backup выгрузка резервных копий записей во внешнее хранилище.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/models"
)

//go:generate mockgen -source=s3.go -destination=mocks/s3.go -package=mocks

// PutObjectAPI часть s3 клиента, нужная для выгрузки.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config параметры подключения. Endpoint задается для S3 совместимых хранилищ.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

// S3Uploader выгружает резервные копии в S3.
type S3Uploader struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger *zap.Logger
}

// NewS3Client создает s3 клиент по конфигурации. Без ключей используется
// стандартная цепочка получения учетных данных AWS.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewS3Uploader создает S3Uploader.
func NewS3Uploader(client PutObjectAPI, bucket, prefix string, logger *zap.Logger) *S3Uploader {
	return &S3Uploader{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.Named("backup"),
	}
}

// Upload сериализует копию в JSON и кладет ее в бакет.
//
// Параметры:
//   - ctx: контекст выполнения
//   - b: резервная копия
//
// Возвращает:
//   - string: ключ объекта
//   - error: ошибка сериализации или выгрузки
func (u *S3Uploader) Upload(ctx context.Context, b *models.Backup) (string, error) {
	body, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshal backup: %w", err)
	}

	key := u.objectKey(b.Date)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put backup object %s: %w", key, err)
	}

	u.logger.Info("backup uploaded",
		zap.String("bucket", u.bucket),
		zap.String("key", key),
		zap.Int("records", len(b.URLs)),
		zap.Int("bytes", len(body)),
	)
	return key, nil
}

func (u *S3Uploader) objectKey(date time.Time) string {
	ts := date.UTC().Format("20060102T150405Z")
	return u.prefix + "screws-backup-" + ts + ".json"
}
