package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordmark/highlight_engine"
)

func TestWordListClient_QueryURL(t *testing.T) {
	wc := NewWordListClient(nil, "https://api.datamuse.com/words")

	assert.Equal(t, "https://api.datamuse.com/words", wc.QueryURL(nil))
	assert.Equal(t, "https://api.datamuse.com/words?max=5&ml=puzzle",
		wc.QueryURL(url.Values{"ml": {"puzzle"}, "max": {"5"}}))

	withQuery := NewWordListClient(nil, "https://words.example.org/lookup?v=1")
	assert.Equal(t, "https://words.example.org/lookup?v=1&rel_syn=ocean",
		withQuery.QueryURL(url.Values{"rel_syn": {"ocean"}}))
}

func TestDecodePhrases(t *testing.T) {
	phrases, err := decodePhrases(`[{"word":"riddle","score":900,"tags":["n"]},{"word":"enigma"}]`)
	require.NoError(t, err)
	assert.Equal(t, []highlight_engine.Phrase{
		{Word: "riddle", Score: 900, Tags: []string{"n"}},
		{Word: "enigma"},
	}, phrases)

	for _, body := range []string{"", "  ", "null", "null\n"} {
		phrases, err := decodePhrases(body)
		require.NoError(t, err)
		assert.Empty(t, phrases)
	}

	_, err = decodePhrases(`{"word":`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse word list")
}

func TestWordListClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/words", r.URL.Path)
		assert.Equal(t, "puzzle", r.URL.Query().Get("ml"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"word":"riddle","score":1}]`))
	}))
	defer srv.Close()

	wc := NewWordListClient(newTestFetcher(t, nil), srv.URL+"/words")
	phrases, err := wc.Lookup(context.Background(), wc.QueryURL(url.Values{"ml": {"puzzle"}}))
	require.NoError(t, err)
	require.Len(t, phrases, 1)
	assert.Equal(t, "riddle", phrases[0].Word)
}
