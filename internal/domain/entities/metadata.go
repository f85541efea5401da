package entities

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/pkg/transcript"
)

// TranscriptMetadata is the optional context supplied with a transcript.
// Zero values mean "unknown" and are treated as neutral signals.
type TranscriptMetadata struct {
	Title               string `json:"title,omitempty"`
	ParticipantCount    int    `json:"participant_count,omitempty"`
	DurationMinutes     int    `json:"duration_minutes,omitempty"`
	ExternalParticipant bool   `json:"external_participant,omitempty"`
}

// HasDeclaredDuration reports whether the caller supplied a duration
func (m TranscriptMetadata) HasDeclaredDuration() bool {
	return m.DurationMinutes > 0
}

// ParseMetadata decodes loosely typed metadata (as received in a JSON body or a
// sidecar file). Fields of the wrong shape are dropped to "unknown" and reported
// as notices; it never fails.
func ParseMetadata(raw map[string]any) (TranscriptMetadata, []Notice) {
	var meta TranscriptMetadata
	var notices []Notice

	malformed := func(field string, value any, reason string) {
		notices = append(notices, Notice{
			Kind:    NoticeMalformedMetadata,
			Field:   field,
			Message: fmt.Sprintf("ignored %s=%v: %s", field, value, reason),
		})
	}

	if v, key, ok := lookup(raw, "title", "meeting_title"); ok {
		switch t := v.(type) {
		case string:
			meta.Title = strings.TrimSpace(t)
		case nil:
		default:
			malformed(key, v, "expected a string")
		}
	}

	if v, key, ok := lookup(raw, "participant_count", "participantCount", "participants"); ok {
		switch t := v.(type) {
		case []any:
			meta.ParticipantCount = len(t)
		case []string:
			meta.ParticipantCount = len(t)
		case nil:
		default:
			n, err := toWholeNumber(v)
			if err != nil {
				malformed(key, v, err.Error())
			} else {
				meta.ParticipantCount = n
			}
		}
	}

	if v, key, ok := lookup(raw, "duration_minutes", "durationMinutes", "duration"); ok {
		switch t := v.(type) {
		case nil:
		case string:
			if minutes, ok := transcript.ParseDuration(t); ok {
				meta.DurationMinutes = minutes
			} else {
				malformed(key, v, "unrecognized duration")
			}
		default:
			n, err := toWholeNumber(v)
			if err != nil {
				malformed(key, v, err.Error())
			} else {
				meta.DurationMinutes = n
			}
		}
	}

	if v, key, ok := lookup(raw, "external_participant", "externalParticipant", "externalParticipantFlag", "external_participants"); ok {
		switch t := v.(type) {
		case bool:
			meta.ExternalParticipant = t
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(t))
			if err != nil {
				switch strings.ToLower(strings.TrimSpace(t)) {
				case "yes", "y":
					meta.ExternalParticipant = true
				case "no", "n", "":
				default:
					malformed(key, v, "expected a boolean")
				}
			} else {
				meta.ExternalParticipant = b
			}
		case nil:
		default:
			n, err := toWholeNumber(v)
			if err != nil || n > 1 {
				malformed(key, v, "expected a boolean")
			} else {
				meta.ExternalParticipant = n == 1
			}
		}
	}

	return meta, notices
}

func lookup(raw map[string]any, keys ...string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			return v, k, true
		}
	}
	return nil, "", false
}

func toWholeNumber(v any) (int, error) {
	var f float64
	switch t := v.(type) {
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case float32:
		f = float64(t)
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number")
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("must be a non-negative number")
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("must be a whole number")
	}
	if f > math.MaxInt32 {
		return 0, fmt.Errorf("out of range")
	}
	return int(f), nil
}
