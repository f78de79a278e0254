package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/screws/internal/db"
	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/repositories"
)

type URLRepoSuite struct {
	suite.Suite
	repo *URLRepo
	ctx  context.Context
}

func (s *URLRepoSuite) SetupTest() {
	s.repo = NewURLRepo(db.NewMemStorage())
	s.ctx = context.Background()
}

func (s *URLRepoSuite) newURL(code string, date int64) *models.URL {
	return &models.URL{
		ID:           gofakeit.UUID(),
		Code:         code,
		LongURL:      gofakeit.URL(),
		IsRandomCode: true,
		Date:         date,
	}
}

func (s *URLRepoSuite) TestInsertFindOne() {
	u := s.newURL("abc", 1)
	s.Require().NoError(s.repo.Insert(s.ctx, u))

	got, err := s.repo.FindOne(s.ctx, repositories.ByCode{Code: "abc"})
	s.Require().NoError(err)
	s.Equal(u.LongURL, got.LongURL)

	got, err = s.repo.FindOne(s.ctx, repositories.ByID{ID: u.ID})
	s.Require().NoError(err)
	s.Equal("abc", got.Code)

	_, err = s.repo.FindOne(s.ctx, repositories.ByCode{Code: "missing"})
	s.Require().ErrorIs(err, repositories.ErrNotFound)

	err = s.repo.Insert(s.ctx, s.newURL("abc", 2))
	s.Require().ErrorIs(err, repositories.ErrDuplicateKey)
}

func (s *URLRepoSuite) TestInsert_ConcurrentSameCode() {
	var wg sync.WaitGroup
	results := make(chan error, 20)
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.repo.Insert(s.ctx, s.newURL("race", int64(i)))
		}()
	}
	wg.Wait()
	close(results)

	var ok, dup int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, repositories.ErrDuplicateKey):
			dup++
		}
	}
	s.Equal(1, ok)
	s.Equal(19, dup)
}

func (s *URLRepoSuite) TestFind_SortAndLimit() {
	for i, code := range []string{"c1", "c2", "c3"} {
		s.Require().NoError(s.repo.Insert(s.ctx, s.newURL(code, int64(i+1))))
	}

	desc, err := s.repo.Find(s.ctx, repositories.All{}, repositories.FindOptions{
		Sort:  repositories.SortDateDesc,
		Limit: 2,
	})
	s.Require().NoError(err)
	s.Require().Len(desc, 2)
	s.Equal("c3", desc[0].Code)
	s.Equal("c2", desc[1].Code)

	asc, err := s.repo.Find(s.ctx, repositories.All{}, repositories.FindOptions{Sort: repositories.SortDateAsc})
	s.Require().NoError(err)
	s.Require().Len(asc, 3)
	s.Equal("c1", asc[0].Code)

	after := int64(1)
	ranged, err := s.repo.Find(s.ctx, repositories.ByDateRange{After: &after}, repositories.FindOptions{})
	s.Require().NoError(err)
	s.Len(ranged, 2)
}

func (s *URLRepoSuite) TestReusableAndExpired() {
	now := time.Now().UnixMilli()
	past := now - 1000
	hash := "hash"

	reusable := s.newURL("r1", 1)
	expired := s.newURL("e1", 2)
	expired.LongURL = reusable.LongURL
	expired.Expiration = &past
	protected := s.newURL("p1", 3)
	protected.LongURL = reusable.LongURL
	protected.Password = &hash

	for _, u := range []*models.URL{expired, protected, reusable} {
		s.Require().NoError(s.repo.Insert(s.ctx, u))
	}

	got, err := s.repo.FindOne(s.ctx, repositories.Reusable{LongURL: reusable.LongURL})
	s.Require().NoError(err)
	s.Equal("r1", got.Code)

	n, err := s.repo.Delete(s.ctx, repositories.ExpiredCode{Code: "r1", Now: now})
	s.Require().NoError(err)
	s.Zero(n)

	n, err = s.repo.Delete(s.ctx, repositories.ExpiredCode{Code: "e1", Now: now})
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *URLRepoSuite) TestAppendFlag() {
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

	flagged, err := s.repo.Find(s.ctx, repositories.ByFlagCount{Count: 2}, repositories.FindOptions{})
	s.Require().NoError(err)
	s.Len(flagged, 1)

	_, err = s.repo.AppendFlag(s.ctx, "missing", "mod-a")
	s.Require().ErrorIs(err, repositories.ErrNotFound)
}

func (s *URLRepoSuite) TestAppendFlag_Concurrent() {
	s.Require().NoError(s.repo.Insert(s.ctx, s.newURL("f2", 1)))

	var wg sync.WaitGroup
	for range 30 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.repo.AppendFlag(s.ctx, "f2", gofakeit.UUID())
		}()
	}
	wg.Wait()

	got, err := s.repo.FindOne(s.ctx, repositories.ByCode{Code: "f2"})
	s.Require().NoError(err)
	s.Len(got.Flags, 30)
}

func (s *URLRepoSuite) TestStats() {
	stats, err := s.repo.Stats(s.ctx)
	s.Require().NoError(err)
	s.Zero(stats.Count)
	s.Zero(stats.AvgObjSize)

	s.Require().NoError(s.repo.Insert(s.ctx, s.newURL("s1", 1)))
	stats, err = s.repo.Stats(s.ctx)
	s.Require().NoError(err)
	s.True(stats.OK)
	s.Equal(int64(1), stats.Count)
	s.Positive(stats.Size)
	s.Equal(stats.Size, stats.AvgObjSize)
}

func (s *URLRepoSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.repo.FindOne(ctx, repositories.ByCode{Code: "abc"})
	s.Require().ErrorIs(err, context.Canceled)
	s.Require().NotErrorIs(err, repositories.ErrUnknown)

	err = s.repo.Insert(ctx, s.newURL("abc", 1))
	s.Require().ErrorIs(err, context.Canceled)
}

func TestURLRepoSuite(t *testing.T) {
	suite.Run(t, new(URLRepoSuite))
}
