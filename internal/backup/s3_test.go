package backup

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goccy/go-json"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/backup/mocks"
	"github.com/fsdevblog/screws/internal/models"
)

func TestS3Uploader_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockPutObjectAPI(ctrl)
	uploader := NewS3Uploader(client, "bucket", "backups/", zap.NewNop())

	date := time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)
	b := &models.Backup{Date: date, URLs: []models.URL{{ID: "1", Code: "abc", LongURL: "https://example.com"}}}

	client.EXPECT().PutObject(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Equal(t, "bucket", *in.Bucket)
			assert.Equal(t, "backups/screws-backup-20240301T102030Z.json", *in.Key)
			assert.Equal(t, "application/json", *in.ContentType)

			raw, err := io.ReadAll(in.Body)
			require.NoError(t, err)
			var got models.Backup
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, "abc", got.URLs[0].Code)
			return &s3.PutObjectOutput{}, nil
		})

	key, err := uploader.Upload(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, "backups/screws-backup-20240301T102030Z.json", key)
}

func TestS3Uploader_UploadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockPutObjectAPI(ctrl)
	client.EXPECT().PutObject(gomock.Any(), gomock.Any()).Return(nil, errors.New("denied"))

	_, err := NewS3Uploader(client, "b", "", zap.NewNop()).Upload(context.Background(), &models.Backup{})
	require.Error(t, err)
}
