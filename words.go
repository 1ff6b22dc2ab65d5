package main

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"wordmark/highlight_engine"
)

// WordListClient queries a Datamuse-style word lookup API
type WordListClient struct {
	fetcher *Fetcher
	baseURL string
}

// NewWordListClient creates a client for the API at baseURL
func NewWordListClient(fetcher *Fetcher, baseURL string) *WordListClient {
	return &WordListClient{fetcher: fetcher, baseURL: baseURL}
}

// QueryURL builds the lookup URL for the given parameters
func (wc *WordListClient) QueryURL(params url.Values) string {
	q := params.Encode()
	if q == "" {
		return wc.baseURL
	}
	sep := "?"
	if strings.Contains(wc.baseURL, "?") {
		sep = "&"
	}
	return wc.baseURL + sep + q
}

// Lookup fetches and decodes the word list at queryURL. An empty or null
// response is an empty list.
func (wc *WordListClient) Lookup(ctx context.Context, queryURL string) ([]highlight_engine.Phrase, error) {
	page, err := wc.fetcher.Fetch(ctx, queryURL)
	if err != nil {
		return nil, err
	}
	return decodePhrases(page.Content)
}

func decodePhrases(body string) ([]highlight_engine.Phrase, error) {
	body = strings.TrimSpace(body)
	if body == "" || body == "null" {
		return nil, nil
	}
	var phrases []highlight_engine.Phrase
	if err := json.Unmarshal([]byte(body), &phrases); err != nil {
		return nil, errors.Wrap(err, "failed to parse word list")
	}
	return phrases, nil
}
