package pg

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/db"
	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/repositories"
)

func TestBuildWhere(t *testing.T) {
	after := int64(10)
	before := int64(20)

	tests := []struct {
		name     string
		q        repositories.Query
		want     string
		wantArgs int
	}{
		{name: "code", q: repositories.ByCode{Code: "a"}, want: "u.code = $1", wantArgs: 1},
		{name: "date both", q: repositories.ByDateRange{After: &after, Before: &before},
			want: "u.date > $1 AND u.date < $2", wantArgs: 2},
		{name: "date none", q: repositories.ByDateRange{}, want: "TRUE"},
		{name: "expiration null", q: repositories.ByExpiration{Null: true}, want: "u.expiration IS NULL"},
		{name: "expiration before", q: repositories.ByExpiration{Before: &before},
			want: "u.expiration IS NOT NULL AND u.expiration < $1", wantArgs: 1},
		{name: "all", q: repositories.All{}, want: "TRUE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args, err := buildWhere(tt.q)
			if err != nil {
				t.Fatal(err)
			}
			if where != tt.want || len(args) != tt.wantArgs {
				t.Errorf("buildWhere() = %q %v, want %q with %d args", where, args, tt.want, tt.wantArgs)
			}
		})
	}
}

// URLRepoSuite интеграционные тесты. Запускаются при TEST_INTEGRATION=1 и доступном docker.
type URLRepoSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	repo      *URLRepo
	ctx       context.Context
}

func (s *URLRepoSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx, "postgres:16-alpine",
		postgres.WithDatabase("screws"),
		postgres.WithUsername("screws"),
		postgres.WithPassword("screws"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(db.MigratePostgres(dsn, zap.NewNop()))
	s.pool, err = db.NewPostgresConnection(s.ctx, dsn)
	s.Require().NoError(err)
	s.repo = NewURLRepo(s.pool, zap.NewNop())
}

func (s *URLRepoSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *URLRepoSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "TRUNCATE urls CASCADE")
	s.Require().NoError(err)
}

func (s *URLRepoSuite) newURL(code string, date int64) *models.URL {
	return &models.URL{
		ID:           gofakeit.UUID(),
		Code:         code,
		LongURL:      gofakeit.URL(),
		IsRandomCode: true,
		Date:         date,
		Preview:      &models.Preview{Image: models.PreviewImage{URL: gofakeit.URL(), Type: "image/png"}},
	}
}

func (s *URLRepoSuite) TestInsertFind() {
	u := s.newURL("abc", 1)
	s.Require().NoError(s.repo.Insert(s.ctx, u))

	got, err := s.repo.FindOne(s.ctx, repositories.ByCode{Code: "abc"})
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)
	s.Equal(u.Preview.Image.URL, got.Preview.Image.URL)
	s.Nil(got.Flags)

	err = s.repo.Insert(s.ctx, s.newURL("abc", 2))
	s.Require().ErrorIs(err, repositories.ErrDuplicateKey)

	_, err = s.repo.FindOne(s.ctx, repositories.ByCode{Code: "nope"})
	s.Require().ErrorIs(err, repositories.ErrNotFound)
}

func (s *URLRepoSuite) TestAppendFlagDelete() {
	s.Require().NoError(s.repo.Insert(s.ctx, s.newURL("f1", 1)))

	res, err := s.repo.AppendFlag(s.ctx, "f1", "mod-a")
	s.Require().NoError(err)
	s.Equal(repositories.FlagResult{Appended: true, Count: 1}, res)

	res, err = s.repo.AppendFlag(s.ctx, "f1", "mod-a")
	s.Require().NoError(err)
	s.Equal(repositories.FlagResult{Appended: false, Count: 1}, res)

	res, err = s.repo.AppendFlag(s.ctx, "f1", "mod-b")
	s.Require().NoError(err)
	s.Equal(repositories.FlagResult{Appended: true, Count: 2}, res)

	_, err = s.repo.AppendFlag(s.ctx, "missing", "mod-a")
	s.Require().ErrorIs(err, repositories.ErrNotFound)

	n, err := s.repo.Delete(s.ctx, repositories.ByFlagCount{Count: 2})
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	stats, err := s.repo.Stats(s.ctx)
	s.Require().NoError(err)
	s.Zero(stats.Count)
}

func TestURLRepoSuite(t *testing.T) {
	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("set TEST_INTEGRATION=1 to run postgres integration tests")
	}
	suite.Run(t, new(URLRepoSuite))
}
