package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"wordmark/highlight_engine"
)

// Server serves highlighted pages
type Server struct {
	cfg     *Config
	engine  *highlight_engine.Engine
	fetcher *Fetcher
	words   *WordListClient
	allow   *AllowList
	stats   *Stats
	limiter *RateLimiter
	logger  *slog.Logger
}

// NewServer wires the service components from cfg
func NewServer(cfg *Config, logger *slog.Logger) *Server {
	stopWords := highlight_engine.NewStopWords(
		append(highlight_engine.DefaultStopWords().Words(), cfg.ExtraStopWords...)...,
	)
	keys := highlight_engine.NewKeyExtractor(stopWords, highlight_engine.DefaultSuffixRules)
	fetcher := NewFetcher(cfg)

	return &Server{
		cfg: cfg,
		engine: highlight_engine.NewEngine(
			highlight_engine.WithKeyExtractor(keys),
			highlight_engine.WithColor(cfg.HighlightColor),
		),
		fetcher: fetcher,
		words:   NewWordListClient(fetcher, cfg.WordsAPIURL),
		allow:   NewAllowList(cfg.AllowedRoots),
		stats:   NewStats(),
		limiter: NewRateLimiter(cfg.ClientRate, cfg.ClientBurst),
		logger:  logger,
	}
}

// Routes builds the echo instance serving the API
func (s *Server) Routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger(s.logger))

	highlight := e.Group("", s.limiter.Middleware())
	highlight.GET("/", s.handleHighlight)
	highlight.GET("/highlight", s.handleHighlight)

	e.GET("/stats", s.handleStats)
	e.GET("/healthz", s.handleHealth)
	return e
}

// handleHighlight fetches srcurl and the word list named by the remaining
// query parameters and returns the page with the words highlighted
func (s *Server) handleHighlight(c echo.Context) error {
	logger := loggerFrom(c)
	params := c.QueryParams()

	src, err := parseSourceURL(params.Get("srcurl"))
	if err != nil {
		return respondError(c, err)
	}
	logger = logger.With(slog.String(LogFieldSource, src.Raw))
	if err := s.allow.Check(src); err != nil {
		return respondError(c, err)
	}

	wordParams := make(url.Values, len(params))
	for k, v := range params {
		if k != "srcurl" {
			wordParams[k] = v
		}
	}
	queryURL := s.words.QueryURL(wordParams)

	start := time.Now()
	page, phrases, err := s.fetchBoth(c.Request().Context(), src, queryURL)
	if err != nil {
		s.stats.update(src.Root, statFailed, 0, 0)
		logger.Warn("fetch failed",
			slog.String("error", err.Error()),
			slog.String(LogFieldErrorCode, string(GetCodeFromError(err, ErrCodeUpstreamFailed))),
		)
		return respondError(c, err)
	}
	logger.Debug("fetched",
		slog.Int("page_bytes", page.ContentLength),
		slog.Int("phrases", len(phrases)),
		slog.Int64(LogFieldDuration, time.Since(start).Milliseconds()),
	)

	markStart := time.Now()
	content := rewriteRelativeURLs(page.Content, src)

	var attr *highlight_engine.Attribution
	if s.cfg.Banner {
		attr = &highlight_engine.Attribution{
			SourceURL: src.Raw,
			QueryURL:  queryURL,
			Title:     extractTitle(content),
		}
	}
	res := s.engine.Mark(content, phrases, attr)
	elapsed := time.Since(markStart)

	s.stats.update(src.Root, statServed, res.Highlights, elapsed.Seconds())
	logger.Info("page marked",
		slog.Int("highlights", res.Highlights),
		slog.Int("spans", res.Spans),
		slog.Int64(LogFieldDuration, elapsed.Milliseconds()),
	)

	return c.HTML(http.StatusOK, res.HTML)
}

// fetchBoth downloads the page and the word list concurrently
func (s *Server) fetchBoth(ctx context.Context, src *SourceURL, queryURL string) (*PageData, []highlight_engine.Phrase, error) {
	var (
		page    *PageData
		phrases []highlight_engine.Phrase
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.fetcher.FetchPage(gctx, src)
		if err != nil {
			return UpstreamFailed("unable to fetch srcurl", err)
		}
		page = p
		return nil
	})
	g.Go(func() error {
		ps, err := s.words.Lookup(gctx, queryURL)
		if err != nil {
			return UpstreamFailed("unable to fetch word list", err)
		}
		phrases = ps
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return page, phrases, nil
}

func (s *Server) handleStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.stats.Snapshot())
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// respondError writes err as a plain-text response
func respondError(c echo.Context, err error) error {
	reqErr, ok := err.(*RequestError)
	if !ok {
		reqErr = &RequestError{Message: "internal error", Cause: err}
	}
	return c.String(reqErr.Status(), reqErr.Message)
}
