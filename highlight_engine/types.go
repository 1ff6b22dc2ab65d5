package highlight_engine

// Phrase represents a single entry returned by the word lookup API
type Phrase struct {
	Word  string   `json:"word"`
	Score int      `json:"score,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// Token is a maximal run of ASCII letters or a single non-letter character
type Token struct {
	Text string
	Word bool
}

// SpanKind classifies a span of the source document
type SpanKind int

const (
	// SpanText is text between tags, sent to the highlighter
	SpanText SpanKind = iota
	// SpanTag is a tag, or a whole script/style element, copied verbatim
	SpanTag
)

func (k SpanKind) String() string {
	switch k {
	case SpanText:
		return "text"
	case SpanTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Span is a contiguous piece of the source document
type Span struct {
	Kind  SpanKind
	Start int
	Text  string
	// Element is the lowercased tag name for tag spans ("" for closing tags,
	// comments and declarations)
	Element string
}

// End returns the offset just past the span
func (s Span) End() int {
	return s.Start + len(s.Text)
}

// Attribution describes where a marked page and its word list came from
type Attribution struct {
	SourceURL string
	QueryURL  string
	Title     string
}

// Result is the outcome of marking a document
type Result struct {
	HTML         string
	Highlights   int
	Spans        int
	BodyInjected bool
}
