package highlight_engine

import "strings"

type scanState int

const (
	stateInText scanState = iota
	stateInTag
)

// rawTextClosers maps elements whose content is never tokenized to the
// closer that ends them. title and textarea render markup literally.
var rawTextClosers = map[string]string{
	"script":   "</script>",
	"style":    "</style>",
	"title":    "</title>",
	"textarea": "</textarea>",
}

// Scanner splits raw HTML into text and tag spans without building a tree.
// Script, style, title and textarea elements are returned whole as a
// single tag span.
type Scanner struct {
	doc   string
	pos   int
	state scanState
}

// NewScanner creates a scanner positioned at the start of doc
func NewScanner(doc string) *Scanner {
	return &Scanner{doc: doc}
}

// Next returns the next span, or false once the document is exhausted
func (s *Scanner) Next() (Span, bool) {
	if s.pos >= len(s.doc) {
		return Span{}, false
	}
	if s.doc[s.pos] == '<' {
		s.state = stateInTag
	}

	switch s.state {
	case stateInTag:
		return s.scanTag(), true
	default:
		return s.scanText(), true
	}
}

// Spans returns every remaining span
func (s *Scanner) Spans() []Span {
	var spans []Span
	for {
		span, ok := s.Next()
		if !ok {
			return spans
		}
		spans = append(spans, span)
	}
}

func (s *Scanner) scanText() Span {
	start := s.pos
	end := len(s.doc)
	if i := strings.IndexByte(s.doc[start:], '<'); i >= 0 {
		end = start + i
		s.state = stateInTag
	}
	s.pos = end
	return Span{Kind: SpanText, Start: start, Text: s.doc[start:end]}
}

func (s *Scanner) scanTag() Span {
	start := s.pos
	name := tagName(s.doc, start+1)

	closer := ">"
	var closerAt int
	if raw, ok := rawTextClosers[name]; ok {
		closer = raw
		closerAt = indexFold(s.doc, closer, start+1)
	} else {
		closerAt = strings.IndexByte(s.doc[start+1:], '>')
		if closerAt >= 0 {
			closerAt += start + 1
		}
	}

	end := len(s.doc)
	if closerAt >= 0 {
		end = closerAt + len(closer)
	}
	s.pos = end
	s.state = stateInText
	return Span{Kind: SpanTag, Start: start, Text: s.doc[start:end], Element: name}
}

// tagName reads the lowercased element name starting at i. Closing tags,
// comments and declarations have no name.
func tagName(doc string, i int) string {
	j := i
	for j < len(doc) && (isLetter(doc[j]) || (j > i && doc[j] >= '0' && doc[j] <= '9')) {
		j++
	}
	return asciiLower(doc[i:j])
}

// indexFold finds needle in s at or after from, ignoring ASCII case.
// needle must be lowercase.
func indexFold(s, needle string, from int) int {
	n := len(needle)
	for i := from; i+n <= len(s); i++ {
		if s[i] != needle[0] {
			continue
		}
		if asciiEqualFold(s[i:i+n], needle) {
			return i
		}
	}
	return -1
}

func asciiEqualFold(a, lower string) bool {
	for i := 0; i < len(a); i++ {
		c := a[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != lower[i] {
			return false
		}
	}
	return true
}

func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
