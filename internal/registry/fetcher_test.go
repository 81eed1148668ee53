package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const browserRegistry = `[
  {
    "name": "Browser",
    "description": "Browse the web",
    "category": "Utilities",
    "config": {"mcpKey": "puppeteer", "runtime": "npx", "args": ["-y", "@pkg/server-puppeteer", "--debug"]}
  }
]`

func newServer(t *testing.T, hits *atomic.Int32, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newFetcher(t *testing.T, url string) *Fetcher {
	t.Helper()
	f, err := NewFetcher(Options{URL: url, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return f
}

func TestNewFetcher_RequiresURL(t *testing.T) {
	_, err := NewFetcher(Options{})
	require.Error(t, err)
}

func TestFetch_CachesSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits, http.StatusOK, browserRegistry)
	f := newFetcher(t, srv.URL)

	first, err := f.Fetch(context.Background())
	require.NoError(t, err)
	second, err := f.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.JSONEq(t, browserRegistry, string(first))
	assert.Equal(t, first, second)
	assert.Equal(t, srv.URL, f.URL())
}

func TestFetch_ReturnsCopies(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits, http.StatusOK, `[]`)
	f := newFetcher(t, srv.URL)

	first, err := f.Fetch(context.Background())
	require.NoError(t, err)
	first[0] = '{'

	second, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(second))
}

func TestFetch_InvalidateRefetches(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits, http.StatusOK, browserRegistry)
	f := newFetcher(t, srv.URL)

	_, err := f.Fetch(context.Background())
	require.NoError(t, err)
	f.Invalidate()
	_, err = f.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), hits.Load())
}

func TestFetch_StatusErrorIsNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits, http.StatusServiceUnavailable, "down")
	f := newFetcher(t, srv.URL)

	_, err := f.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.False(t, IsParseError(err))
	assert.Contains(t, err.Error(), "unexpected status 503")

	_, err = f.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetch_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	f := newFetcher(t, url)

	_, err := f.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
}

func TestFetch_ParseError(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits, http.StatusOK, "<html>not json</html>")
	f := newFetcher(t, srv.URL)

	_, err := f.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.False(t, IsTransportError(err))
	assert.Contains(t, err.Error(), "failed to parse app registry JSON")
}

func TestFetch_ConcurrentCallersShareRequest(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(browserRegistry))
	}))
	t.Cleanup(srv.Close)
	f := newFetcher(t, srv.URL)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.Fetch(context.Background())
			assert.NoError(t, err)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
}

func TestApps(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits, http.StatusOK, browserRegistry)
	f := newFetcher(t, srv.URL)

	apps, err := f.Apps(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, App{
		Name:    "Browser",
		MCPKey:  "puppeteer",
		Runtime: RuntimeNPX,
		Args:    []string{"-y", "@pkg/server-puppeteer", "--debug"},
	}, apps[0])
}
