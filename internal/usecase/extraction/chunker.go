package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	charsPerToken       = 4
	DefaultMaxChars     = 2000 * charsPerToken
	DefaultOverlapChars = 200
	minChunkChars       = 500
	continuedMarker     = "[...continued from previous section...]"
)

var (
	// Alice:, Sarah (PM):, Dr. Smith:, [01:15 Speaker A]:
	turnStart     = regexp.MustCompile(`(?m)^(?:\[[^\]\n]*\]:?\s*|\p{Lu}[\p{L}\p{N} .'\-]{0,40}(?:\([^)\n]+\))?\s*:)`)
	paragraphGap  = regexp.MustCompile(`\n\s*\n`)
	sentenceBreak = regexp.MustCompile(`[.!?]\s+`)
)

// Chunk is one slice of a long transcript sent to the extractor on its own
type Chunk struct {
	Index int
	Total int
	Text  string
}

// Chunker splits transcripts that are too long for a single extraction call
type Chunker struct {
	MaxChars     int
	OverlapChars int
}

// NewChunker returns a chunker with the default sizes
func NewChunker() *Chunker {
	return &Chunker{MaxChars: DefaultMaxChars, OverlapChars: DefaultOverlapChars}
}

// Split returns the transcript as one chunk when it fits, otherwise as pieces
// cut on speaker turns, then paragraphs, then sentences. Every piece after the
// first repeats the tail of the previous one for context.
func (c *Chunker) Split(text string) []Chunk {
	text = strings.TrimSpace(text)
	if len(text) <= c.MaxChars {
		return []Chunk{{Index: 1, Total: 1, Text: text}}
	}

	var pieces []string
	for _, p := range c.splitTurns(text) {
		if len(p) > c.MaxChars {
			pieces = append(pieces, c.splitParagraphs(p)...)
			continue
		}
		pieces = append(pieces, p)
	}
	pieces = c.mergeSmall(pieces)

	chunks := make([]Chunk, len(pieces))
	for i, p := range pieces {
		body := p
		if i > 0 {
			if tail := c.overlap(pieces[i-1]); tail != "" {
				body = continuedMarker + "\n" + tail + "\n\n" + p
			}
		}
		chunks[i] = Chunk{Index: i + 1, Total: len(pieces), Text: body}
	}
	return chunks
}

func (c *Chunker) splitTurns(text string) []string {
	starts := turnStart.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return c.splitParagraphs(text)
	}

	bounds := make([]int, 0, len(starts)+2)
	if starts[0][0] > 0 {
		bounds = append(bounds, 0)
	}
	for _, s := range starts {
		bounds = append(bounds, s[0])
	}
	bounds = append(bounds, len(text))

	var out []string
	var current strings.Builder
	for i := 0; i < len(bounds)-1; i++ {
		turn := text[bounds[i]:bounds[i+1]]
		if current.Len() > 0 && current.Len()+len(turn) > c.MaxChars {
			out = appendTrimmed(out, current.String())
			current.Reset()
		}
		current.WriteString(turn)
	}
	return appendTrimmed(out, current.String())
}

func (c *Chunker) splitParagraphs(text string) []string {
	var out []string
	current := ""
	for _, para := range paragraphGap.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(current)+len(para)+2 <= c.MaxChars {
			current = join(current, para, "\n\n")
			continue
		}
		out = appendTrimmed(out, current)
		current = para
		if len(para) > c.MaxChars {
			sentences := c.splitSentences(para)
			out = append(out, sentences[:len(sentences)-1]...)
			current = sentences[len(sentences)-1]
		}
	}
	return appendTrimmed(out, current)
}

// splitSentences is the last resort. A single sentence longer than MaxChars is
// cut at MaxChars.
func (c *Chunker) splitSentences(text string) []string {
	var sentences []string
	last := 0
	for _, m := range sentenceBreak.FindAllStringIndex(text, -1) {
		sentences = append(sentences, strings.TrimSpace(text[last:m[1]]))
		last = m[1]
	}
	if last < len(text) {
		sentences = append(sentences, strings.TrimSpace(text[last:]))
	}

	var out []string
	current := ""
	for _, s := range sentences {
		for len(s) > c.MaxChars {
			out = appendTrimmed(out, current)
			current = ""
			cut := runeCut(s, c.MaxChars)
			out = append(out, s[:cut])
			s = s[cut:]
		}
		if len(current)+len(s)+1 > c.MaxChars {
			out = appendTrimmed(out, current)
			current = s
			continue
		}
		current = join(current, s, " ")
	}
	out = appendTrimmed(out, current)
	if len(out) == 0 {
		out = []string{text}
	}
	return out
}

func (c *Chunker) mergeSmall(pieces []string) []string {
	if len(pieces) <= 1 {
		return pieces
	}
	var merged []string
	for i := 0; i < len(pieces); i++ {
		current := pieces[i]
		for len(current) < minChunkChars && i+1 < len(pieces) && len(current)+len(pieces[i+1])+2 <= c.MaxChars {
			current = current + "\n\n" + pieces[i+1]
			i++
		}
		merged = append(merged, current)
	}
	return merged
}

// overlap returns the tail of a piece, starting at a turn or paragraph
// boundary when one falls inside the window.
func (c *Chunker) overlap(text string) string {
	if c.OverlapChars <= 0 {
		return ""
	}
	if len(text) <= c.OverlapChars {
		return text
	}
	start := len(text) - c.OverlapChars
	for start < len(text) && !utf8.RuneStart(text[start]) {
		start++
	}
	suffix := text[start:]
	if loc := turnStart.FindStringIndex(suffix); loc != nil {
		return suffix[loc[0]:]
	}
	if idx := strings.Index(suffix, "\n\n"); idx != -1 {
		return suffix[idx+2:]
	}
	return suffix
}

// runeCut moves n back to the start of a rune
func runeCut(s string, n int) int {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	if n == 0 {
		return len(s)
	}
	return n
}

func appendTrimmed(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}

func join(a, b, sep string) string {
	if a == "" {
		return b
	}
	return a + sep + b
}
