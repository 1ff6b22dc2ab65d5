package highlight_engine

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single word", input: "hello", expected: []string{"hello"}},
		{name: "sentence", input: "He is running.", expected: []string{"He", " ", "is", " ", "running", "."}},
		{name: "digits are single tokens", input: "xyz123", expected: []string{"xyz", "1", "2", "3"}},
		{name: "leading punctuation", input: "--ok", expected: []string{"-", "-", "ok"}},
		{name: "apostrophe splits", input: "don't", expected: []string{"don", "'", "t"}},
		{name: "multibyte rune kept whole", input: "café!", expected: []string{"caf", "é", "!"}},
		{name: "entity", input: "a&amp;b", expected: []string{"a", "&", "amp", ";", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, tok := range Tokenize(tt.input) {
				got = append(got, tok.Text)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTokenize_Totality(t *testing.T) {
	inputs := []string{
		"",
		"plain words only",
		"  \t\nwhitespace\r\n",
		"Mixed123 CASE, punctuation!? and ünïcödé",
		"<not really a tag> & stuff",
		strings.Repeat("ab ", 100),
	}

	for _, in := range inputs {
		tokens := Tokenize(in)
		var b strings.Builder
		for _, tok := range tokens {
			assert.NotEmpty(t, tok.Text)
			if tok.Word {
				for i := 0; i < len(tok.Text); i++ {
					assert.True(t, isLetter(tok.Text[i]), "word token %q has non-letter", tok.Text)
				}
			} else {
				assert.Equal(t, 1, utf8.RuneCountInString(tok.Text), "token %q", tok.Text)
			}
			b.WriteString(tok.Text)
		}
		assert.Equal(t, in, b.String())
	}
}
