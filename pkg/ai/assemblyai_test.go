package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

type fakeTranscripts struct {
	transcript aai.Transcript
	err        error
}

func (f fakeTranscripts) Get(_ context.Context, _ string) (aai.Transcript, error) {
	return f.transcript, f.err
}

func utterance(speaker string, startMs int64, text string) aai.TranscriptUtterance {
	return aai.TranscriptUtterance{
		Speaker: aai.String(speaker),
		Start:   aai.Int64(startMs),
		Text:    aai.String(text),
	}
}

func TestFetch_FormatsUtterances(t *testing.T) {
	f := &TranscriptFetcher{transcripts: fakeTranscripts{transcript: aai.Transcript{
		Status: aai.TranscriptStatusCompleted,
		Utterances: []aai.TranscriptUtterance{
			utterance("A", 0, "Good morning everyone."),
			utterance("B", 75500, " Yesterday I fixed the build. "),
			utterance("A", 3723000, "Thanks."),
		},
	}}}

	got, err := f.Fetch(context.Background(), "tr-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := "[00:00 Speaker A]: Good morning everyone.\n" +
		"[01:15 Speaker B]: Yesterday I fixed the build.\n" +
		"[62:03 Speaker A]: Thanks.\n"
	if got.Text != want {
		t.Fatalf("unexpected text:\n%s", got.Text)
	}
	if got.SpeakerCount != 2 {
		t.Fatalf("expected 2 speakers, got %d", got.SpeakerCount)
	}
}

func TestFetch_PlainTextFallback(t *testing.T) {
	f := &TranscriptFetcher{transcripts: fakeTranscripts{transcript: aai.Transcript{
		Status: aai.TranscriptStatusCompleted,
		Text:   aai.String("just one voice"),
	}}}

	got, err := f.Fetch(context.Background(), "tr-2")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Text != "just one voice" || got.SpeakerCount != 0 {
		t.Fatalf("unexpected transcript %+v", got)
	}
}

func TestFetch_NotReady(t *testing.T) {
	f := &TranscriptFetcher{transcripts: fakeTranscripts{transcript: aai.Transcript{
		Status: aai.TranscriptStatusProcessing,
	}}}

	_, err := f.Fetch(context.Background(), "tr-3")
	if !errors.Is(err, ErrTranscriptNotReady) {
		t.Fatalf("expected ErrTranscriptNotReady, got %v", err)
	}
}

func TestFetch_ErrorStatus(t *testing.T) {
	f := &TranscriptFetcher{transcripts: fakeTranscripts{transcript: aai.Transcript{
		Status: aai.TranscriptStatusError,
		Error:  aai.String("audio too short"),
	}}}

	_, err := f.Fetch(context.Background(), "tr-4")
	if err == nil || !strings.Contains(err.Error(), "audio too short") {
		t.Fatalf("expected transcript error, got %v", err)
	}
}

func TestFetch_GetError(t *testing.T) {
	f := &TranscriptFetcher{transcripts: fakeTranscripts{err: errors.New("connection refused")}}

	if _, err := f.Fetch(context.Background(), "tr-5"); err == nil {
		t.Fatal("expected error")
	}
}
