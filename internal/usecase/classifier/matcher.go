package classifier

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/johnquangdev/meeting-summarizer/pkg/transcript"
)

// phraseSet counts whole-phrase occurrences of a keyword list. Longer phrases
// claim their span first so "story points" is not also counted as "story".
type phraseSet struct {
	phrases []string
}

func newPhraseSet(keywords []string) *phraseSet {
	seen := make(map[string]struct{}, len(keywords))
	phrases := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		p := canonical(kw)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		phrases = append(phrases, p)
	}
	sort.SliceStable(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return phrases[i] < phrases[j]
	})
	return &phraseSet{phrases: phrases}
}

// count returns the total number of non-overlapping hits and the distinct
// phrases that matched, in phrase order.
func (s *phraseSet) count(text string) (int, []string) {
	claimed := make([]bool, len(text))
	total := 0
	var matched []string

	for _, phrase := range s.phrases {
		hits := 0
		for from := 0; from < len(text); {
			idx := strings.Index(text[from:], phrase)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(phrase)
			if wordBoundary(text, start, end) && !anyClaimed(claimed, start, end) {
				for i := start; i < end; i++ {
					claimed[i] = true
				}
				hits++
				from = end
				continue
			}
			_, size := utf8.DecodeRuneInString(text[start:])
			from = start + size
		}
		if hits > 0 {
			total += hits
			matched = append(matched, phrase)
		}
	}
	return total, matched
}

// contains reports whether any phrase appears as a whole phrase
func (s *phraseSet) contains(text string) bool {
	n, _ := s.count(text)
	return n > 0
}

// canonical normalizes text for matching: folded case, single spaces
func canonical(text string) string {
	return strings.Join(strings.Fields(transcript.Normalize(text)), " ")
}

func wordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func anyClaimed(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// hasWordPrefix reports whether term starts a word somewhere in text
func hasWordPrefix(text, term string) bool {
	term = canonical(term)
	if term == "" {
		return false
	}
	for from := 0; from < len(text); {
		idx := strings.Index(text[from:], term)
		if idx < 0 {
			return false
		}
		start := from + idx
		if start == 0 {
			return true
		}
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); !isWordRune(r) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return false
}
