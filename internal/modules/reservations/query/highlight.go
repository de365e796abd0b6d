package query

import (
	"unicode"
	"unicode/utf8"
)

// Span is a matched region of text, in bytes.
type Span struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// MarkedText is text annotated with the regions that matched a search query.
type MarkedText struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans"`
}

// Segment is a run of text that is either entirely matched or entirely unmatched.
type Segment struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// Highlight finds every case-insensitive occurrence of query in text, scanning left
// to right and resuming after each match. The query is matched literally.
func Highlight(text, query string) MarkedText {
	marked := MarkedText{Text: text, Spans: []Span{}}
	if query == "" {
		return marked
	}

	for i := 0; i < len(text); {
		if end, ok := matchFoldAt(text, i, query); ok {
			marked.Spans = append(marked.Spans, Span{Offset: i, Length: end - i})
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return marked
}

// matchFoldAt reports whether query matches text starting at byte i, returning the
// byte offset just past the match.
func matchFoldAt(text string, i int, query string) (int, bool) {
	j := i
	for _, q := range query {
		if j >= len(text) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(text[j:])
		if unicode.ToLower(r) != unicode.ToLower(q) {
			return 0, false
		}
		j += size
	}
	return j, true
}

// Segments splits the text at span boundaries. Empty text yields no segments.
func (m MarkedText) Segments() []Segment {
	segments := make([]Segment, 0, 2*len(m.Spans)+1)
	cursor := 0
	for _, span := range m.Spans {
		if span.Offset > cursor {
			segments = append(segments, Segment{Text: m.Text[cursor:span.Offset]})
		}
		segments = append(segments, Segment{Text: m.Text[span.Offset : span.Offset+span.Length], Matched: true})
		cursor = span.Offset + span.Length
	}
	if cursor < len(m.Text) {
		segments = append(segments, Segment{Text: m.Text[cursor:]})
	}
	return segments
}
