package highlight_engine

import "strings"

// DefaultClass is the class carried by highlight markers
const DefaultClass = "wordmark"

// Highlighter wraps tokens that match a phrase index
type Highlighter struct {
	index *PhraseIndex
	open  string
	close string
}

// NewHighlighter creates a highlighter that marks matches with class
func NewHighlighter(index *PhraseIndex, class string) *Highlighter {
	if class == "" {
		class = DefaultClass
	}
	return &Highlighter{
		index: index,
		open:  `<mark class="` + class + `">`,
		close: "</mark>",
	}
}

// Highlight returns text with every matching token wrapped
func (h *Highlighter) Highlight(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	h.HighlightTo(&b, text)
	return b.String()
}

// HighlightTo writes the highlighted text to b and returns the number of
// tokens wrapped
func (h *Highlighter) HighlightTo(b *strings.Builder, text string) int {
	if h.index == nil || h.index.Len() == 0 {
		b.WriteString(text)
		return 0
	}

	count := 0
	for _, tok := range Tokenize(text) {
		if tok.Word && h.index.Matches(tok.Text) {
			b.WriteString(h.open)
			b.WriteString(tok.Text)
			b.WriteString(h.close)
			count++
			continue
		}
		b.WriteString(tok.Text)
	}
	return count
}
