package transcript

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	vttTimingLine = regexp.MustCompile(`^((?:\d{2,}:)?\d{2}:\d{2}\.\d{3})\s+-->\s+((?:\d{2,}:)?\d{2}:\d{2}\.\d{3})`)
	vttVoiceTag   = regexp.MustCompile(`<v(?:\.[^\s>]+)?\s+([^>]+)>`)
	vttAnyTag     = regexp.MustCompile(`</?[^>]+>`)
)

// IsVTT reports whether the text is a WebVTT document
func IsVTT(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, "\ufeff \t\r\n"), "WEBVTT")
}

// ParseVTT converts a WebVTT document into "Speaker: text" lines and returns the
// end time of the last cue in seconds. Consecutive cues by the same voice are
// joined into one line.
func ParseVTT(text string) (string, float64) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var out []string
	var lastSpeaker string
	var endSeconds float64
	inNote := false

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "":
			inNote = false
			continue
		case inNote:
			continue
		case strings.HasPrefix(line, "WEBVTT"), strings.HasPrefix(line, "\ufeffWEBVTT"):
			continue
		case strings.HasPrefix(line, "NOTE"), strings.HasPrefix(line, "STYLE"), strings.HasPrefix(line, "REGION"):
			inNote = true
			continue
		}

		if m := vttTimingLine.FindStringSubmatch(line); m != nil {
			if end := parseTimestamp(m[2]); end > endSeconds {
				endSeconds = end
			}
			continue
		}
		// cue identifier
		if i+1 < len(lines) && vttTimingLine.MatchString(strings.TrimSpace(lines[i+1])) {
			continue
		}

		speaker := ""
		if m := vttVoiceTag.FindStringSubmatch(line); m != nil {
			speaker = strings.TrimSpace(m[1])
		}
		body := strings.TrimSpace(vttAnyTag.ReplaceAllString(line, ""))
		if body == "" {
			continue
		}

		switch {
		case speaker != "" && speaker == lastSpeaker && len(out) > 0:
			out[len(out)-1] += " " + body
		case speaker != "":
			out = append(out, speaker+": "+body)
			lastSpeaker = speaker
		case len(out) > 0 && lastSpeaker != "":
			out[len(out)-1] += " " + body
		default:
			out = append(out, body)
		}
	}

	return strings.Join(out, "\n"), endSeconds
}

func parseTimestamp(ts string) float64 {
	parts := strings.Split(ts, ":")
	var seconds float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		seconds = seconds*60 + v
	}
	return seconds
}
