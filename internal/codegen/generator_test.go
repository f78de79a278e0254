package codegen

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/fsdevblog/screws/internal/codegen/mocks"
	"github.com/fsdevblog/screws/internal/models"
	"github.com/fsdevblog/screws/internal/urlcodec"
)

var codeRegexp = regexp.MustCompile(`^[A-Za-z0-9]+$`)

type GeneratorSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	checker *mocks.MockCodeChecker
	gen     *Generator
}

func (s *GeneratorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.checker = mocks.NewMockCodeChecker(s.ctrl)
	s.gen = New(urlcodec.NewReservedSet(urlcodec.DefaultReservedCodes), zap.NewNop())
}

func (s *GeneratorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *GeneratorSuite) TestGenerate_RandomToken() {
	s.checker.EXPECT().IsCodeTaken(gomock.Any(), gomock.Any()).Return(false, nil)

	code, err := s.gen.Generate(context.Background(), s.checker, false, 0)
	s.Require().NoError(err)
	s.Len(code, DefaultTokenLength)
	s.Regexp(codeRegexp, code)
}

func (s *GeneratorSuite) TestGenerate_FullWords() {
	s.checker.EXPECT().IsCodeTaken(gomock.Any(), gomock.Any()).Return(false, nil)

	code, err := s.gen.Generate(context.Background(), s.checker, true, 2)
	s.Require().NoError(err)
	s.NotEmpty(code)
	s.Regexp(`^[a-z0-9]+$`, code)
}

func (s *GeneratorSuite) TestGenerate_RetriesOnCollision() {
	gomock.InOrder(
		s.checker.EXPECT().IsCodeTaken(gomock.Any(), gomock.Any()).Return(true, nil),
		s.checker.EXPECT().IsCodeTaken(gomock.Any(), gomock.Any()).Return(true, nil),
		s.checker.EXPECT().IsCodeTaken(gomock.Any(), gomock.Any()).Return(false, nil),
	)

	code, err := s.gen.Generate(context.Background(), s.checker, false, 0)
	s.Require().NoError(err)
	s.NotEmpty(code)
}

func (s *GeneratorSuite) TestGenerate_StoreErrorCountsAsTaken() {
	gomock.InOrder(
		s.checker.EXPECT().IsCodeTaken(gomock.Any(), gomock.Any()).Return(false, errors.New("store down")),
		s.checker.EXPECT().IsCodeTaken(gomock.Any(), gomock.Any()).Return(false, nil),
	)

	code, err := s.gen.Generate(context.Background(), s.checker, false, 0)
	s.Require().NoError(err)
	s.NotEmpty(code)
}

func (s *GeneratorSuite) TestGenerate_Exhausted() {
	gen := New(urlcodec.NewReservedSet(nil), zap.NewNop(), WithMaxAttempts(3))
	s.checker.EXPECT().IsCodeTaken(gomock.Any(), gomock.Any()).Return(true, nil).Times(3)

	_, err := gen.Generate(context.Background(), s.checker, false, 0)
	s.Require().ErrorIs(err, ErrExhausted)
}

func (s *GeneratorSuite) TestGenerate_FullWordsExhaustedKeepsLengthBound() {
	gen := New(urlcodec.NewReservedSet(nil), zap.NewNop(), WithMaxAttempts(20))
	s.checker.EXPECT().IsCodeTaken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, code string) (bool, error) {
			s.LessOrEqual(len(code), models.MaxCodeLength)
			return true, nil
		}).AnyTimes()

	_, err := gen.Generate(context.Background(), s.checker, true, 2)
	s.Require().ErrorIs(err, ErrExhausted)
}

func (s *GeneratorSuite) TestGenerate_NeverReturnsReserved() {
	reserved := mocks.NewMockReservedChecker(s.ctrl)
	gomock.InOrder(
		reserved.EXPECT().IsReserved(gomock.Any()).Return(true),
		reserved.EXPECT().IsReserved(gomock.Any()).Return(false),
	)
	s.checker.EXPECT().IsCodeTaken(gomock.Any(), gomock.Any()).Return(false, nil).Times(1)

	gen := New(reserved, zap.NewNop())
	code, err := gen.Generate(context.Background(), s.checker, false, 0)
	s.Require().NoError(err)
	s.NotEmpty(code)
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func TestRandomToken(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		tok, err := RandomToken(12)
		if err != nil {
			t.Fatal(err)
		}
		if !codeRegexp.MatchString(tok) || len(tok) != 12 {
			t.Fatalf("unexpected token %q", tok)
		}
		seen[tok] = struct{}{}
	}
	if len(seen) < 99 {
		t.Errorf("too many collisions: %d unique of 100", len(seen))
	}
}

func TestNextWordCount(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		count     int
		want      int
	}{
		{name: "grows", candidate: "redfox", count: 2, want: 3},
		{name: "grows past four words", candidate: "redfoxjumpsover", count: 4, want: 5},
		{name: "at length limit", candidate: strings.Repeat("a", models.MaxCodeLength), count: 6, want: 7},
		{name: "too long stops growing", candidate: strings.Repeat("a", models.MaxCodeLength+1), count: 7, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextWordCount(tt.candidate, tt.count); got != tt.want {
				t.Errorf("nextWordCount(%q, %d) = %d, want %d", tt.candidate, tt.count, got, tt.want)
			}
		})
	}
}

func TestSanitizeWord(t *testing.T) {
	tests := map[string]string{
		"Hello":     "hello",
		"don't":     "dont",
		"über-cool": "bercool",
	}
	for in, want := range tests {
		if got := sanitizeWord(in); got != want {
			t.Errorf("sanitizeWord(%q) = %q, want %q", in, got, want)
		}
	}
}
