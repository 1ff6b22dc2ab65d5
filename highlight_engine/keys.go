package highlight_engine

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// defaultStopWords are closed-class words that never produce keys
var defaultStopWords = []string{
	"am", "an", "and", "are", "as", "at", "be", "by", "for", "from", "had",
	"how", "if", "in", "is", "it", "its", "of", "on", "or", "than", "that",
	"the", "their", "theirs", "them", "then", "these", "they", "this",
	"those", "to", "was", "were", "what", "when", "where", "which", "who",
	"whom", "why", "with",
}

// SuffixRule strips Suffix from a word. With DropExtra set, a second
// candidate also drops the character before the suffix ("running" -> "run").
type SuffixRule struct {
	Suffix    string
	DropExtra bool
}

// DefaultSuffixRules is the ordered rule table used by DefaultKeyExtractor
var DefaultSuffixRules = []SuffixRule{
	{Suffix: "ed", DropExtra: true},
	{Suffix: "s", DropExtra: true},
	{Suffix: "ing", DropExtra: true},
}

// StopWords is an immutable set of lowercase words
type StopWords struct {
	words map[string]struct{}
}

// NewStopWords creates a stop word set. Words are lowercased.
func NewStopWords(words ...string) StopWords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return StopWords{words: set}
}

// DefaultStopWords returns the built-in stop word set
func DefaultStopWords() StopWords {
	return NewStopWords(defaultStopWords...)
}

// Contains reports whether w (already lowercased) is a stop word
func (s StopWords) Contains(w string) bool {
	_, ok := s.words[w]
	return ok
}

// Words returns the stop words in sorted order
func (s StopWords) Words() []string {
	words := make([]string, 0, len(s.words))
	for w := range s.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Len returns the number of stop words
func (s StopWords) Len() int {
	return len(s.words)
}

// KeyExtractor derives lookup keys for words and phrases
type KeyExtractor struct {
	stopWords StopWords
	rules     []SuffixRule
}

// NewKeyExtractor creates a key extractor with the given stop words and
// suffix rules. The rules slice is copied.
func NewKeyExtractor(stopWords StopWords, rules []SuffixRule) *KeyExtractor {
	return &KeyExtractor{
		stopWords: stopWords,
		rules:     append([]SuffixRule(nil), rules...),
	}
}

// DefaultKeyExtractor uses the built-in stop words and suffix rules
func DefaultKeyExtractor() *KeyExtractor {
	return NewKeyExtractor(DefaultStopWords(), DefaultSuffixRules)
}

// Keys returns the lookup keys for phrase in rule order. Stop words yield
// no keys at all. The result may contain duplicates.
func (ke *KeyExtractor) Keys(phrase string) []string {
	lc := strings.ToLower(phrase)
	if ke.stopWords.Contains(lc) {
		return nil
	}

	var keys []string
	keys = ke.appendKey(keys, lc)
	for _, rule := range ke.rules {
		if rule.Suffix == "" || !strings.HasSuffix(lc, rule.Suffix) {
			continue
		}
		n := len(lc) - len(rule.Suffix)
		keys = ke.appendKey(keys, lc[:n])
		if rule.DropExtra && n > 0 {
			_, size := utf8.DecodeLastRuneInString(lc[:n])
			keys = ke.appendKey(keys, lc[:n-size])
		}
	}
	return keys
}

func (ke *KeyExtractor) appendKey(keys []string, key string) []string {
	if utf8.RuneCountInString(key) <= 1 || ke.stopWords.Contains(key) {
		return keys
	}
	return append(keys, key)
}
