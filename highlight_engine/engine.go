// Package highlight_engine highlights words from a phrase list inside raw
// HTML. It never builds a document tree: the markup is split into tag and
// text spans, and only text spans are rewritten.
package highlight_engine

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Engine marks phrases in HTML documents. It holds no per-document state
// and is safe for concurrent use.
type Engine struct {
	keys  *KeyExtractor
	class string
	color string
}

// Option configures an Engine
type Option func(*Engine)

// WithKeyExtractor replaces the default key extractor
func WithKeyExtractor(ke *KeyExtractor) Option {
	return func(e *Engine) {
		if ke != nil {
			e.keys = ke
		}
	}
}

// WithClass sets the class used on highlight markers
func WithClass(class string) Option {
	return func(e *Engine) {
		if class != "" {
			e.class = class
		}
	}
}

// WithColor sets the highlight text color in the injected stylesheet
func WithColor(color string) Option {
	return func(e *Engine) {
		if color != "" {
			e.color = color
		}
	}
}

// NewEngine creates a new engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		keys:  DefaultKeyExtractor(),
		class: DefaultClass,
		color: "blue",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// KeyExtractor returns the extractor used for phrases and tokens
func (e *Engine) KeyExtractor() *KeyExtractor {
	return e.keys
}

// Header returns the block injected after the body tag
func (e *Engine) Header(attr *Attribution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n<style>\n.%s {\n  color: %s;\n  background: none;\n  font-weight: bold !important;\n}\n", e.class, e.color)
	if attr != nil {
		fmt.Fprintf(&b, ".%s-banner {\n  padding: 4px 8px;\n  border-bottom: 1px solid #ccc;\n  font: 12px sans-serif;\n  background: #f4f4f4;\n}\n", e.class)
	}
	b.WriteString("</style>\n")
	if attr != nil {
		b.WriteString(e.banner(attr))
	}
	return b.String()
}

func (e *Engine) banner(attr *Attribution) string {
	page := attr.Title
	if page == "" {
		page = attr.SourceURL
	}
	return fmt.Sprintf(
		"<div class=\"%s-banner\">Highlighted <a href=\"%s\">%s</a> with words from <a href=\"%s\">%s</a></div>\n",
		e.class,
		html.EscapeString(attr.SourceURL), html.EscapeString(page),
		html.EscapeString(attr.QueryURL), html.EscapeString(attr.QueryURL),
	)
}

// Mark highlights phrases in doc. Tag spans, including whole script and
// style elements, are copied unchanged. The header is injected once, right
// after the first body opening tag. attr may be nil.
func (e *Engine) Mark(doc string, phrases []Phrase, attr *Attribution) *Result {
	index := BuildIndex(phrases, e.keys)
	hl := NewHighlighter(index, e.class)

	var b strings.Builder
	b.Grow(len(doc) + len(doc)/8)

	res := &Result{}
	sc := NewScanner(doc)
	for {
		span, ok := sc.Next()
		if !ok {
			break
		}
		res.Spans++
		if span.Kind == SpanText {
			res.Highlights += hl.HighlightTo(&b, span.Text)
			continue
		}
		b.WriteString(span.Text)
		if span.Element == "body" && !res.BodyInjected {
			b.WriteString(e.Header(attr))
			res.BodyInjected = true
		}
	}
	res.HTML = b.String()
	return res
}

// MarkDocument highlights phrases in doc using the default engine
func MarkDocument(doc string, phrases []Phrase) string {
	return NewEngine().Mark(doc, phrases, nil).HTML
}
