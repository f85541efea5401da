package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/meeting-summarizer/pkg/ai"
)

type fakeProvider struct {
	mu        sync.Mutex
	responses []string
	err       error
	requests  []ai.CompletionRequest
}

func (f *fakeProvider) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return `{}`, nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-model" }

func TestLLMExtractor_SingleChunk(t *testing.T) {
	p := &fakeProvider{responses: []string{"```json\n{\"tldr\":\"Short sync\",\"attendees\":[\"Alice\"]}\n```"}}
	e := NewLLMExtractor(p, nil, nil)

	got, err := e.Extract(context.Background(), "Alice: quick sync", testContract)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got["tldr"] != "Short sync" {
		t.Fatalf("unexpected content %v", got)
	}

	if len(p.requests) != 1 {
		t.Fatalf("expected one call, got %d", len(p.requests))
	}
	req := p.requests[0]
	if !strings.Contains(req.SystemPrompt, "**General Meeting**") {
		t.Fatalf("system prompt lacks the meeting type:\n%s", req.SystemPrompt)
	}
	if !strings.Contains(req.SystemPrompt, "Capture action items with owners and deadlines") {
		t.Fatal("system prompt lacks the contract guidelines")
	}
	if !strings.Contains(req.SystemPrompt, `"action_items" (array of {task, owner, deadline, priority})`) {
		t.Fatalf("system prompt lacks the action item shape:\n%s", req.SystemPrompt)
	}
	if req.SchemaName != "general_report" || req.Schema == nil {
		t.Fatalf("unexpected schema %s %v", req.SchemaName, req.Schema)
	}
	if !strings.HasSuffix(req.UserPrompt, "Alice: quick sync") {
		t.Fatalf("unexpected user prompt %q", req.UserPrompt)
	}
}

func TestLLMExtractor_MergesChunks(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&sb, "Speaker %d: %s\n", i%2, strings.Repeat("talking ", 20))
	}
	p := &fakeProvider{responses: []string{
		`{"tldr":"first","attendees":["Alice"]}`,
		`{"tldr":"second","attendees":["Bob","alice"]}`,
	}}
	e := NewLLMExtractor(p, &Chunker{MaxChars: 1000}, nil)

	got, err := e.Extract(context.Background(), sb.String(), testContract)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(p.requests) < 2 {
		t.Fatalf("expected chunked calls, got %d", len(p.requests))
	}
	if !strings.Contains(p.requests[1].UserPrompt, "part 2 of") {
		t.Fatalf("second prompt lacks the part marker: %q", p.requests[1].UserPrompt[:80])
	}
	if got["tldr"] != "first" {
		t.Fatalf("tldr = %v", got["tldr"])
	}
	if attendees := got["attendees"].([]any); len(attendees) != 2 {
		t.Fatalf("attendees = %v", attendees)
	}
}

func TestLLMExtractor_Errors(t *testing.T) {
	upstream := errors.New("groq returned status 503")
	_, err := NewLLMExtractor(&fakeProvider{err: upstream}, nil, nil).Extract(context.Background(), "Alice: hi", testContract)
	if !errors.Is(err, upstream) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}

	_, err = NewLLMExtractor(&fakeProvider{responses: []string{"sorry, I cannot help"}}, nil, nil).Extract(context.Background(), "Alice: hi", testContract)
	if !errors.Is(err, ucErrors.ErrMalformedExtract) {
		t.Fatalf("expected ErrMalformedExtract, got %v", err)
	}
}
