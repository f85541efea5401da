package extraction

import (
	"fmt"
	"strings"
	"testing"
)

func TestChunker_ShortTranscript(t *testing.T) {
	chunks := NewChunker().Split("  Alice: hello\nBob: hi  ")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "Alice: hello\nBob: hi" || chunks[0].Index != 1 || chunks[0].Total != 1 {
		t.Fatalf("unexpected chunk %+v", chunks[0])
	}
}

func TestChunker_SplitsOnTurns(t *testing.T) {
	speakers := []string{"Alice", "Bob", "Carol"}
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&sb, "%s: turn %02d %s\n", speakers[i%3], i, strings.Repeat("words ", 50))
	}
	text := sb.String()

	c := NewChunker()
	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}

	for i, ch := range chunks {
		if ch.Index != i+1 || ch.Total != len(chunks) {
			t.Fatalf("chunk %d has index %d/%d", i, ch.Index, ch.Total)
		}
		body := ch.Text
		if i > 0 {
			if !strings.HasPrefix(body, continuedMarker) {
				t.Fatalf("chunk %d lacks the overlap marker", i+1)
			}
			body = body[strings.Index(body, "\n\n")+2:]
		}
		if len(body) > c.MaxChars {
			t.Fatalf("chunk %d body has %d chars, max %d", i+1, len(body), c.MaxChars)
		}
		if strings.TrimSpace(body) == "" {
			t.Fatalf("chunk %d is empty", i+1)
		}
	}

	all := joinChunks(chunks)
	for i := 0; i < 60; i++ {
		if !strings.Contains(all, fmt.Sprintf("turn %02d ", i)) {
			t.Fatalf("turn %d lost while chunking", i)
		}
	}
}

func TestChunker_SentenceFallback(t *testing.T) {
	var sentences []string
	for i := 0; i < 30; i++ {
		sentences = append(sentences, fmt.Sprintf("this is sentence number %d.", i))
	}
	text := strings.Join(sentences, " ")

	c := &Chunker{MaxChars: 100}
	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for _, ch := range chunks {
		if len(ch.Text) > 100 {
			t.Fatalf("chunk exceeds max: %q", ch.Text)
		}
	}
	all := joinChunks(chunks)
	for _, s := range sentences {
		if !strings.Contains(all, s) {
			t.Fatalf("sentence %q lost", s)
		}
	}
}

func TestChunker_HardCut(t *testing.T) {
	c := &Chunker{MaxChars: 100}
	chunks := c.Split(strings.Repeat("x", 250))
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if got := len(joinChunks(chunks)); got != 250 {
		t.Fatalf("expected 250 chars back, got %d", got)
	}
}

func joinChunks(chunks []Chunk) string {
	var sb strings.Builder
	for _, ch := range chunks {
		sb.WriteString(ch.Text)
	}
	return sb.String()
}
