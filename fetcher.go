package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// PageData represents a fetched document
type PageData struct {
	URL           string
	StatusCode    int
	Content       string
	ContentType   string
	ContentLength int
	FetchTime     time.Time
	Duration      time.Duration
}

// ErrRobotsDisallowed is returned when robots.txt forbids fetching a page
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// Fetcher downloads source pages and word lists through a shared client and
// rate limiter
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	maxBytes  int64
	robots    *RobotsCache
}

// NewFetcher creates a fetcher from the service config
func NewFetcher(cfg *Config) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
			Transport: &http.Transport{
				Proxy:              http.ProxyFromEnvironment,
				MaxIdleConns:       100,
				IdleConnTimeout:    90 * time.Second,
				DisableCompression: false,
			},
		},
		limiter:   rate.NewLimiter(rate.Limit(cfg.FetchRate), cfg.FetchBurst),
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxPageBytes,
	}
	if cfg.RespectRobots {
		f.robots = NewRobotsCache(time.Hour, cfg.UserAgent)
	}
	return f
}

// FetchPage fetches a source page, honouring robots.txt when enabled
func (f *Fetcher) FetchPage(ctx context.Context, src *SourceURL) (*PageData, error) {
	if f.robots != nil {
		u, err := url.Parse(src.Raw)
		if err != nil {
			return nil, errors.Wrap(err, "invalid page url")
		}
		if !f.robots.GetRules(ctx, src.Root, f.client).Allowed(u.EscapedPath()) {
			return nil, errors.Wrapf(ErrRobotsDisallowed, "fetch %s", src.Raw)
		}
	}
	return f.Fetch(ctx, src.Raw)
}

// Fetch fetches rawURL and returns its body decoded to UTF-8
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*PageData, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", rawURL)
	}
	if int64(len(raw)) > f.maxBytes {
		return nil, errors.Errorf("fetch %s: body exceeds %d bytes", rawURL, f.maxBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := decodeBody(raw, contentType)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", rawURL)
	}

	return &PageData{
		URL:           rawURL,
		StatusCode:    resp.StatusCode,
		Content:       body,
		ContentType:   contentType,
		ContentLength: len(raw),
		FetchTime:     start,
		Duration:      time.Since(start),
	}, nil
}

// decodeBody converts raw to UTF-8 using the declared or sniffed charset
func decodeBody(raw []byte, contentType string) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", err
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// extractTitle returns the text of the first title element, or "" if there
// is none
func extractTitle(content string) string {
	z := html.NewTokenizer(strings.NewReader(content))
	inTitle := false
	var title strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(title.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "title" {
				inTitle = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "title" && inTitle {
				return strings.Join(strings.Fields(title.String()), " ")
			}
		case html.TextToken:
			if inTitle {
				title.Write(z.Text())
			}
		}
	}
}
