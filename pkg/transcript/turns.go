package transcript

import (
	"regexp"
	"strings"
)

// Turn is one labeled speaker contribution
type Turn struct {
	Speaker string
	Text    string
	Words   int
}

var (
	// [02:15 Alice]: text
	bracketSpeakerLine = regexp.MustCompile(`^\[(?:\d{1,2}:)?\d{1,2}:\d{2}(?:\.\d+)?\s+([^\]]+)\]:?\s*(.*)$`)
	// Alice: text, Speaker 1: text, [00:01:02] Bob Lee: text
	namedSpeakerLine = regexp.MustCompile(`^(?:[\[(]?(?:\d{1,2}:)?\d{1,2}:\d{2}(?:\.\d+)?[\])]?\s+)?(\p{Lu}[\p{L}\p{N}.'\-]*(?:\s+(?:\p{Lu}[\p{L}\p{N}.'\-]*|\d+)){0,3})\s*:\s*(.*)$`)
	// <v Alice>text</v>
	vttVoiceLine = regexp.MustCompile(`<v\s+([^>]+)>(.*?)(?:</v>)?\s*$`)
)

var ignoredLabels = []string{"note", "action", "decision", "summary", "topic", "agenda"}

// ParseTurns splits a transcript into speaker turns. Each labeled line starts a
// new turn; unlabeled lines continue the previous one. Text before the first
// label is not attributed to anyone.
func ParseTurns(text string) []Turn {
	var turns []Turn
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		speaker, body, labeled, ok := splitSpeaker(line)
		if ok {
			turns = append(turns, Turn{Speaker: speaker, Text: body})
			continue
		}
		if labeled {
			// "Action Items:", "Summary:" and similar headings are not speech
			continue
		}
		if len(turns) > 0 {
			last := &turns[len(turns)-1]
			if last.Text == "" {
				last.Text = line
			} else {
				last.Text += " " + line
			}
		}
	}

	for i := range turns {
		turns[i].Words = WordCount(turns[i].Text)
	}
	return turns
}

// Speakers returns the distinct speakers in order of first appearance
func Speakers(turns []Turn) []string {
	seen := make(map[string]struct{})
	var speakers []string
	for _, t := range turns {
		if _, ok := seen[t.Speaker]; ok {
			continue
		}
		seen[t.Speaker] = struct{}{}
		speakers = append(speakers, t.Speaker)
	}
	return speakers
}

// WordCount counts whitespace separated tokens
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// splitSpeaker reports the speaker and body of a labeled line. labeled is true
// when the line looked like a label even if the label was rejected.
func splitSpeaker(line string) (speaker, body string, labeled, ok bool) {
	for _, re := range []*regexp.Regexp{vttVoiceLine, bracketSpeakerLine, namedSpeakerLine} {
		if m := re.FindStringSubmatch(line); m != nil {
			speaker, body, ok = acceptLabel(m[1], m[2])
			return speaker, body, true, ok
		}
	}
	return "", "", false, false
}

func acceptLabel(label, body string) (string, string, bool) {
	name := strings.Join(strings.Fields(label), " ")
	if name == "" {
		return "", "", false
	}
	lower := strings.ToLower(name)
	for _, word := range ignoredLabels {
		if strings.Contains(lower, word) {
			return "", "", false
		}
	}
	return name, strings.TrimSpace(body), true
}
