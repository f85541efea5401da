package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// ErrTranscriptNotReady is returned for transcripts still queued or processing
var ErrTranscriptNotReady = errors.New("transcript is not completed yet")

type transcriptGetter interface {
	Get(ctx context.Context, transcriptID string) (aai.Transcript, error)
}

// FetchedTranscript is a completed AssemblyAI transcript flattened to text
type FetchedTranscript struct {
	ID              string
	Text            string
	DurationMinutes int
	SpeakerCount    int
}

// TranscriptFetcher loads completed transcripts from AssemblyAI
type TranscriptFetcher struct {
	transcripts transcriptGetter
}

// NewTranscriptFetcher creates a fetcher backed by the official SDK client
func NewTranscriptFetcher(apiKey string) *TranscriptFetcher {
	return &TranscriptFetcher{transcripts: aai.NewClient(apiKey).Transcripts}
}

// Fetch returns the transcript as speaker-labelled lines. Utterances are
// rendered as "[MM:SS Speaker A]: text"; without speaker labels the plain text
// is returned.
func (f *TranscriptFetcher) Fetch(ctx context.Context, transcriptID string) (*FetchedTranscript, error) {
	transcript, err := f.transcripts.Get(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assemblyai transcript %s: %w", transcriptID, err)
	}

	switch transcript.Status {
	case aai.TranscriptStatusCompleted:
	case aai.TranscriptStatusError:
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai transcript %s failed: %s", transcriptID, msg)
	default:
		return nil, fmt.Errorf("%w: status %s", ErrTranscriptNotReady, transcript.Status)
	}

	out := &FetchedTranscript{ID: transcriptID}
	if transcript.AudioDuration != nil {
		seconds := float64(*transcript.AudioDuration)
		out.DurationMinutes = int(seconds/60 + 0.5)
	}

	if len(transcript.Utterances) > 0 {
		out.Text, out.SpeakerCount = formatUtterances(transcript.Utterances)
	} else if transcript.Text != nil {
		out.Text = *transcript.Text
	}
	if strings.TrimSpace(out.Text) == "" {
		return nil, fmt.Errorf("assemblyai transcript %s has no text", transcriptID)
	}
	return out, nil
}

func formatUtterances(utterances []aai.TranscriptUtterance) (string, int) {
	var sb strings.Builder
	speakers := make(map[string]struct{})
	for _, utt := range utterances {
		if utt.Text == nil || strings.TrimSpace(*utt.Text) == "" {
			continue
		}
		speaker := "Unknown"
		if utt.Speaker != nil && *utt.Speaker != "" {
			speaker = "Speaker " + *utt.Speaker
		}
		speakers[speaker] = struct{}{}

		var start int
		if utt.Start != nil {
			start = int(float64(*utt.Start) / 1000.0)
		}
		sb.WriteString(fmt.Sprintf("[%02d:%02d %s]: %s\n", start/60, start%60, speaker, strings.TrimSpace(*utt.Text)))
	}
	return sb.String(), len(speakers)
}
