package fetch_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/postcollect/internal/fetch"
	"github.com/mrjoshuak/postcollect/types"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		resp, err := fetch.New().Fetch(context.Background(), types.FetchRequest{URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, resp.OK())
		assert.Equal(t, "<html><body>Hello World</body></html>", string(resp.Body))
		assert.Equal(t, "text/html; charset=utf-8", resp.Headers.Get("Content-Type"))
	})

	t.Run("non-2xx is not an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer server.Close()

		resp, err := fetch.New().Fetch(context.Background(), types.FetchRequest{URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.False(t, resp.OK())
	})

	t.Run("sends default and request headers", func(t *testing.T) {
		t.Parallel()

		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
		}))
		defer server.Close()

		f := fetch.New(fetch.WithUserAgent("agent/1.0"))
		_, err := f.Fetch(context.Background(), types.FetchRequest{
			URL:     server.URL,
			Headers: map[string]string{"Referer": "https://example.com/", "Cookie": "a=b"},
		})
		require.NoError(t, err)
		assert.Equal(t, "agent/1.0", got.Get("User-Agent"))
		assert.Equal(t, "https://example.com/", got.Get("Referer"))
		assert.Equal(t, "a=b", got.Get("Cookie"))
	})

	t.Run("request header overrides user agent", func(t *testing.T) {
		t.Parallel()

		var ua string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.UserAgent()
		}))
		defer server.Close()

		_, err := fetch.New().Fetch(context.Background(), types.FetchRequest{
			URL:     server.URL,
			Headers: map[string]string{"User-Agent": "site-specific"},
		})
		require.NoError(t, err)
		assert.Equal(t, "site-specific", ua)
	})

	t.Run("decodes legacy charsets", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=windows-1252")
			_, _ = w.Write([]byte("<p>caf\xe9</p>"))
		}))
		defer server.Close()

		resp, err := fetch.New().Fetch(context.Background(), types.FetchRequest{URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, "<p>café</p>", string(resp.Body))
	})

	t.Run("keeps undeclared utf-8 untouched", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name        string
			contentType string
			body        string
		}{
			{"html with late multibyte rune", "text/html", "<p>" + strings.Repeat("a", 1100) + " café ≥ 10</p>"},
			{"json without charset", "application/json", `{"author_name":"` + strings.Repeat("x", 1100) + ` Beyoncé"}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", tt.contentType)
					_, _ = w.Write([]byte(tt.body))
				}))
				defer server.Close()

				resp, err := fetch.New().Fetch(context.Background(), types.FetchRequest{URL: server.URL})
				require.NoError(t, err)
				assert.Equal(t, tt.body, string(resp.Body))
			})
		}
	})

	t.Run("follows redirects up to the limit", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/hop/", func(w http.ResponseWriter, r *http.Request) {
			var n int
			_, _ = fmt.Sscanf(r.URL.Path, "/hop/%d", &n)
			if n == 0 {
				_, _ = w.Write([]byte("arrived"))
				return
			}
			http.Redirect(w, r, fmt.Sprintf("/hop/%d", n-1), http.StatusFound)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		f := fetch.New(fetch.WithMaxRedirects(2))

		resp, err := f.Fetch(context.Background(), types.FetchRequest{URL: server.URL + "/hop/2"})
		require.NoError(t, err)
		assert.Equal(t, "arrived", string(resp.Body))
		assert.Equal(t, server.URL+"/hop/0", resp.URL)

		_, err = f.Fetch(context.Background(), types.FetchRequest{URL: server.URL + "/hop/3"})
		require.Error(t, err)
	})

	t.Run("respects timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		_, err := fetch.New(fetch.WithTimeout(10*time.Millisecond)).Fetch(context.Background(), types.FetchRequest{URL: server.URL})
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetch.New().Fetch(ctx, types.FetchRequest{URL: server.URL})
		require.Error(t, err)
	})

	t.Run("rejects malformed urls", func(t *testing.T) {
		t.Parallel()

		_, err := fetch.New().Fetch(context.Background(), types.FetchRequest{URL: "http://[::1"})
		require.Error(t, err)
	})
}

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("rate limits requests to same host", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("hosts are independent", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "other.com"))
		assert.Less(t, time.Since(start), 50*time.Millisecond, "different host should not wait")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		require.Error(t, limiter.Wait(ctx, "example.com"))
	})
}
