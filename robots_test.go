package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRobotsTxt(t *testing.T) {
	content := `# sample
User-agent: Googlebot
Disallow: /google-only

User-agent: *
Disallow: /private   # keep out
Disallow:
Allow: /public
Disallow: /tmp/
`
	rules := parseRobotsTxt(content)

	assert.Equal(t, []string{"/private", "/tmp/"}, rules.Disallow)
	assert.False(t, rules.Allowed("/private/page"))
	assert.False(t, rules.Allowed("/tmp/x"))
	assert.True(t, rules.Allowed("/google-only"))
	assert.True(t, rules.Allowed("/public"))
	assert.True(t, rules.Allowed(""))
}

func TestRobotsRules_DisallowAll(t *testing.T) {
	rules := parseRobotsTxt("User-agent: *\nDisallow: /\n")
	assert.False(t, rules.Allowed(""))
	assert.False(t, rules.Allowed("/wiki/Crossword"))
}

func TestRobotsCache_GetRules(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/robots.txt", r.URL.Path)
		assert.Equal(t, "wordmark-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /secret\n"))
	}))
	defer srv.Close()

	rc := NewRobotsCache(time.Hour, "wordmark-test")
	rules := rc.GetRules(context.Background(), srv.URL, srv.Client())
	assert.False(t, rules.Allowed("/secret/page"))
	assert.True(t, rules.Allowed("/open"))

	rc.GetRules(context.Background(), srv.URL, srv.Client())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, 1, rc.Size())
}

func TestRobotsCache_MissingRobotsAllowsAll(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	rc := NewRobotsCache(time.Hour, "wordmark-test")
	rules := rc.GetRules(context.Background(), srv.URL, srv.Client())
	assert.Empty(t, rules.Disallow)
	assert.True(t, rules.Allowed("/anything"))
}
