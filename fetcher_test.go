package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, mutate func(*Config)) *Fetcher {
	t.Helper()
	cfg := validConfig()
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())
	return NewFetcher(cfg)
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<p>hello</p>"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	page, err := f.Fetch(context.Background(), srv.URL+"/page")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, "<p>hello</p>", page.Content)
	assert.Equal(t, len("<p>hello</p>"), page.ContentLength)
	assert.Equal(t, srv.URL+"/page", page.URL)
	assert.Contains(t, page.ContentType, "text/html")
}

func TestFetcher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher(t, nil).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestFetcher_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 64)))
	}))
	defer srv.Close()

	f := newTestFetcher(t, func(c *Config) { c.MaxPageBytes = 32 })
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 32 bytes")

	f = newTestFetcher(t, func(c *Config) { c.MaxPageBytes = 64 })
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, page.Content, 64)
}

func TestFetcher_DecodesCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer srv.Close()

	page, err := newTestFetcher(t, nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<p>café</p>", page.Content)
}

func TestFetcher_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestFetcher(t, nil).Fetch(ctx, srv.URL)
	assert.Error(t, err)
}

func TestFetcher_FetchPageRespectsRobots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
			return
		}
		_, _ = w.Write([]byte("<p>page</p>"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, func(c *Config) { c.RespectRobots = true })

	blocked, err := parseSourceURL(srv.URL + "/private/page.html")
	require.NoError(t, err)
	_, err = f.FetchPage(context.Background(), blocked)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRobotsDisallowed))

	open, err := parseSourceURL(srv.URL + "/public/page.html")
	require.NoError(t, err)
	page, err := f.FetchPage(context.Background(), open)
	require.NoError(t, err)
	assert.Equal(t, "<p>page</p>", page.Content)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "simple", doc: "<html><head><title>Crossword</title></head></html>", want: "Crossword"},
		{name: "whitespace collapsed", doc: "<title>\n  Cryptic\n  clues </title>", want: "Cryptic clues"},
		{name: "entities decoded", doc: "<title>Fish &amp; Chips</title>", want: "Fish & Chips"},
		{name: "uppercase tag", doc: "<TITLE>Upper</TITLE>", want: "Upper"},
		{name: "missing", doc: "<html><body><p>no title</p></body></html>", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTitle(tt.doc))
		})
	}
}
