package preview

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const ogPage = `<!doctype html>
<html><head>
<title>Fallback title</title>
<meta property="og:title" content="OG Title">
<meta property="og:description" content="OG Description">
<meta property="og:image" content="/img/cover.png">
<meta property="og:image:type" content="image/png">
</head><body><meta property="og:title" content="ignored"></body></html>`

type FetcherSuite struct {
	suite.Suite
	server  *httptest.Server
	fetcher *Fetcher
	hits    atomic.Int32
}

func (s *FetcherSuite) SetupTest() {
	s.hits.Store(0)
	mux := http.NewServeMux()
	mux.HandleFunc("/og", func(w http.ResponseWriter, _ *http.Request) {
		s.hits.Add(1)
		_, _ = fmt.Fprint(w, ogPage)
	})
	mux.HandleFunc("/plain", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<html><head><title>Plain</title>
<meta name="description" content="Plain description"></head></html>`)
	})
	mux.HandleFunc("/title-only", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<html><head><title>Only</title></head></html>`)
	})
	mux.HandleFunc("/image-only", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<html><head><meta property="og:image" content="https://cdn.example/i.jpg"></head></html>`)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
			_, _ = fmt.Fprint(w, ogPage)
		case <-r.Context().Done():
		}
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/og", http.StatusFound)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	s.server = httptest.NewServer(mux)

	f, err := New(zap.NewNop(), WithHTTPClient(s.server.Client()))
	s.Require().NoError(err)
	s.fetcher = f
}

func (s *FetcherSuite) TearDownTest() {
	s.fetcher.Close()
	s.server.Close()
}

func (s *FetcherSuite) url(path string) string {
	return s.server.URL + path
}

func (s *FetcherSuite) TestFetch_OpenGraph() {
	p := s.fetcher.Fetch(context.Background(), s.url("/og"), time.Second)
	s.Require().NotNil(p)
	s.Equal("OG Title", p.Title)
	s.Equal("OG Description", p.Description)
	s.Equal(s.url("/img/cover.png"), p.Image.URL)
	s.Equal("image/png", p.Image.Type)
}

func (s *FetcherSuite) TestFetch_Fallback() {
	p := s.fetcher.Fetch(context.Background(), s.url("/plain"), time.Second)
	s.Require().NotNil(p)
	s.Equal("Plain", p.Title)
	s.Equal("Plain description", p.Description)
	s.Empty(p.Image.URL)
}

func (s *FetcherSuite) TestFetch_Unusable() {
	s.Nil(s.fetcher.Fetch(context.Background(), s.url("/title-only"), time.Second))
	s.Nil(s.fetcher.Fetch(context.Background(), s.url("/missing"), time.Second))
	s.Nil(s.fetcher.Fetch(context.Background(), "http://127.0.0.1:1/unreachable", time.Second))
}

func (s *FetcherSuite) TestFetch_ImageOnly() {
	p := s.fetcher.Fetch(context.Background(), s.url("/image-only"), time.Second)
	s.Require().NotNil(p)
	s.Equal("https://cdn.example/i.jpg", p.Image.URL)
}

func (s *FetcherSuite) TestFetch_Timeout() {
	start := time.Now()
	p := s.fetcher.Fetch(context.Background(), s.url("/slow"), 100*time.Millisecond)
	s.Nil(p)
	s.Less(time.Since(start), time.Second)
}

func (s *FetcherSuite) TestFetch_OnFetch() {
	var ok, failed int
	f, err := New(zap.NewNop(), WithHTTPClient(s.server.Client()), WithOnFetch(func(success bool) {
		if success {
			ok++
		} else {
			failed++
		}
	}))
	s.Require().NoError(err)
	defer f.Close()

	f.Fetch(context.Background(), s.url("/og"), time.Second)
	f.Fetch(context.Background(), s.url("/title-only"), time.Second)
	f.Fetch(context.Background(), s.url("/missing"), time.Second)
	s.Equal(1, ok)
	s.Equal(2, failed)
}

func (s *FetcherSuite) TestFetch_OutboundLimit() {
	f, err := New(zap.NewNop(), WithHTTPClient(s.server.Client()), WithOutboundLimit(0.001, 1))
	s.Require().NoError(err)
	defer f.Close()

	s.NotNil(f.Fetch(context.Background(), s.url("/og"), time.Second))

	start := time.Now()
	s.Nil(f.Fetch(context.Background(), s.url("/og"), 100*time.Millisecond))
	s.Less(time.Since(start), time.Second)
	s.Equal(int32(1), s.hits.Load())
}

func (s *FetcherSuite) TestUnscrew() {
	res, err := s.fetcher.Unscrew(context.Background(), s.url("/redirect"), time.Second)
	s.Require().NoError(err)
	s.True(res.Redirected)
	s.Equal(s.url("/redirect"), res.RequestURL)
	s.Equal(s.url("/og"), res.ResponseURL)
	s.Require().NotNil(res.Preview)

	direct, err := s.fetcher.Unscrew(context.Background(), s.url("/og"), time.Second)
	s.Require().NoError(err)
	s.False(direct.Redirected)

	_, err = s.fetcher.Unscrew(context.Background(), s.url("/missing"), time.Second)
	s.Require().ErrorIs(err, ErrFetchFailed)
}

func (s *FetcherSuite) TestUnscrew_Cached() {
	_, err := s.fetcher.Unscrew(context.Background(), s.url("/og"), time.Second)
	s.Require().NoError(err)
	s.fetcher.cache.Wait()

	_, err = s.fetcher.Unscrew(context.Background(), s.url("/og"), time.Second)
	s.Require().NoError(err)
	s.Equal(int32(1), s.hits.Load())
}

func TestFetcherSuite(t *testing.T) {
	suite.Run(t, new(FetcherSuite))
}

func TestParseMeta_StopsAtBody(t *testing.T) {
	p, err := parseMeta(strings.NewReader(ogPage), "https://example.com/a/")
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "OG Title" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Image.URL != "https://example.com/img/cover.png" {
		t.Errorf("image = %q", p.Image.URL)
	}
}
