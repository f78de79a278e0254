package redirect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/redirect/mocks"
	"github.com/fsdevblog/screws/internal/repositories"
)

const secretURL = "youtube.com/watch?v=dQw4w9WgXcQ"

type PolicySuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	store  *mocks.MockStore
	policy *Policy
	now    time.Time
}

func (s *PolicySuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.policy = NewPolicy(s.store, []string{secretURL}, zap.NewNop(),
		WithClock(func() time.Time { return s.now }),
		WithPasswordMatcher(func(hash, plain string) (bool, error) {
			return hash == "hash:"+plain, nil
		}),
	)
}

func (s *PolicySuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PolicySuite) expectFind(rec *models.URL, err error) {
	s.store.EXPECT().FindOne(gomock.Any(), repositories.ByCode{Code: "code"}).Return(rec, err)
}

func (s *PolicySuite) resolve(rc RequestContext) (Decision, error) {
	return s.policy.Resolve(context.Background(), "code", rc)
}

func (s *PolicySuite) TestNotFound() {
	s.expectFind(nil, repositories.ErrNotFound)

	d, err := s.resolve(RequestContext{})
	s.Require().NoError(err)
	s.Equal(NotFound, d.Kind)
}

func (s *PolicySuite) TestStoreUnavailable() {
	s.expectFind(nil, repositories.ErrUnknown)

	_, err := s.resolve(RequestContext{})
	s.Require().ErrorIs(err, ErrStoreUnavailable)
	s.Require().ErrorIs(err, repositories.ErrUnknown)
}

func (s *PolicySuite) TestExpiredDeleted() {
	past := s.now.Add(-time.Minute).UnixMilli()
	s.expectFind(&models.URL{Code: "code", LongURL: "https://example.com", Expiration: &past}, nil)
	s.store.EXPECT().
		Delete(gomock.Any(), repositories.ExpiredCode{Code: "code", Now: s.now.UnixMilli()}).
		Return(int64(1), nil)

	d, err := s.resolve(RequestContext{SkipConfirmation: true})
	s.Require().NoError(err)
	s.Equal(NotFound, d.Kind)
	s.Empty(d.LongURL)
}

func (s *PolicySuite) TestExpiredDeleteFailureStillNotFound() {
	past := s.now.Add(-time.Minute).UnixMilli()
	s.expectFind(&models.URL{Code: "code", Expiration: &past}, nil)
	s.store.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("boom"))

	d, err := s.resolve(RequestContext{})
	s.Require().NoError(err)
	s.Equal(NotFound, d.Kind)
}

func (s *PolicySuite) TestPassword() {
	hash := "hash:secret"
	rec := &models.URL{Code: "code", LongURL: "https://example.com/private", Password: &hash}
	wrong := "nope"
	right := "secret"
	empty := ""

	tests := []struct {
		name          string
		rc            RequestContext
		wantKind      Kind
		wantIncorrect bool
	}{
		{name: "no password", rc: RequestContext{}, wantKind: PasswordRequired},
		{name: "empty password", rc: RequestContext{Password: &empty}, wantKind: PasswordRequired},
		{name: "wrong password", rc: RequestContext{Password: &wrong}, wantKind: PasswordRequired, wantIncorrect: true},
		{name: "right password", rc: RequestContext{Password: &right}, wantKind: Interstitial},
		{
			name:     "right password with skip",
			rc:       RequestContext{Password: &right, SkipConfirmation: true},
			wantKind: ImmediateRedirect,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.expectFind(rec, nil)

			d, err := s.resolve(tt.rc)
			s.Require().NoError(err)
			s.Equal(tt.wantKind, d.Kind)
			s.Equal(tt.wantIncorrect, d.IncorrectPassword)
			if tt.wantKind == PasswordRequired {
				s.Empty(d.LongURL)
				s.Nil(d.Record)
			}
		})
	}
}

func (s *PolicySuite) TestSecretRedirect() {
	rec := &models.URL{Code: "code", LongURL: "https://www." + secretURL}
	s.expectFind(rec, nil)

	d, err := s.resolve(RequestContext{})
	s.Require().NoError(err)
	s.Equal(SilentRedirect, d.Kind)
	s.Equal(rec.LongURL, d.LongURL)
	s.Require().NotNil(d.Record)
}

func (s *PolicySuite) TestSkipAndInterstitial() {
	future := s.now.Add(time.Hour).UnixMilli()
	rec := &models.URL{Code: "code", LongURL: "https://example.com", Expiration: &future}

	s.expectFind(rec, nil)
	d, err := s.resolve(RequestContext{SkipConfirmation: true})
	s.Require().NoError(err)
	s.Equal(ImmediateRedirect, d.Kind)
	s.Equal(rec.LongURL, d.LongURL)

	s.expectFind(rec, nil)
	d, err = s.resolve(RequestContext{})
	s.Require().NoError(err)
	s.Equal(Interstitial, d.Kind)
	s.Same(rec, d.Record)
}

func TestPolicySuite(t *testing.T) {
	suite.Run(t, new(PolicySuite))
}

func TestKind_String(t *testing.T) {
	if NotFound.String() != "not_found" || Interstitial.String() != "interstitial" {
		t.Errorf("unexpected kind names")
	}
	if Kind(42).String() != "kind(42)" {
		t.Errorf("unexpected unknown kind name %q", Kind(42).String())
	}
}
