package classifier

import (
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/pkg/transcript"
)

// Extractor derives a SignalSet from a transcript and its metadata. It is safe
// for concurrent use; all state is built at construction.
type Extractor struct {
	params   Params
	taxonomy *Taxonomy
	keywords map[entities.MeetingType]*phraseSet
	titles   map[entities.MeetingType]*phraseSet
}

// NewExtractor compiles the taxonomy keyword tables
func NewExtractor(tax *Taxonomy, params Params) *Extractor {
	e := &Extractor{
		params:   params,
		taxonomy: tax,
		keywords: make(map[entities.MeetingType]*phraseSet, len(tax.Types)),
		titles:   make(map[entities.MeetingType]*phraseSet, len(tax.Types)),
	}
	for mt, profile := range tax.Types {
		e.keywords[mt] = newPhraseSet(profile.Keywords)
		e.titles[mt] = newPhraseSet(profile.TitleKeywords)
	}
	return e
}

// Extract never fails: unknown metadata becomes a neutral signal
func (e *Extractor) Extract(text string, meta entities.TranscriptMetadata) entities.SignalSet {
	body := canonical(text)
	search := body
	if meta.Title != "" {
		search = canonical(meta.Title) + " \n " + body
	}

	sig := entities.SignalSet{
		KeywordHits:         make(map[entities.MeetingType]int, len(e.keywords)),
		MatchedKeywords:     make(map[entities.MeetingType][]string),
		ExternalParticipant: meta.ExternalParticipant,
	}

	for _, mt := range entities.Specialized() {
		set, ok := e.keywords[mt]
		if !ok {
			continue
		}
		hits, matched := set.count(search)
		sig.KeywordHits[mt] = hits
		if len(matched) > 0 {
			sig.MatchedKeywords[mt] = matched
		}
		if meta.Title != "" && e.titles[mt].contains(canonical(meta.Title)) {
			sig.TitleMatches = append(sig.TitleMatches, mt)
		}
	}

	turns := transcript.ParseTurns(text)
	speakers := transcript.Speakers(turns)
	sig.TurnCount = len(turns)
	sig.SpeakerCount = len(speakers)
	sig.WordCount = transcript.WordCount(text)

	sig.RoundRobin = isRoundRobin(turns, e.params.ShortTurnWords)
	sig.DominantSpeaker = isDominantSpeaker(turns, len(speakers), e.params.DominantShare)
	sig.TwoPartyDialogue = isTwoPartyDialogue(turns, len(speakers), e.params.AlternationShare)

	sig.StatusUpdate = matchPattern(body, e.taxonomy.Patterns.StatusUpdate)
	sig.RetroStructure = matchPattern(body, e.taxonomy.Patterns.RetroStructure)
	sig.StoryEstimation = matchPattern(body, e.taxonomy.Patterns.StoryEstimation)
	sig.TechnicalDeepDive = matchPattern(body, e.taxonomy.Patterns.TechnicalDeepDive)

	switch {
	case meta.ParticipantCount > 0:
		sig.ParticipantCount = meta.ParticipantCount
		sig.ParticipantSource = entities.SourceDeclared
	case len(speakers) > 0:
		sig.ParticipantCount = len(speakers)
		sig.ParticipantSource = entities.SourceDetected
	default:
		sig.ParticipantSource = entities.SourceUnknown
	}

	switch {
	case meta.HasDeclaredDuration():
		sig.DurationMinutes = float64(meta.DurationMinutes)
		sig.DurationSource = entities.SourceDeclared
	case sig.WordCount > 0 && e.params.WordsPerMinute > 0:
		sig.DurationMinutes = float64(sig.WordCount) / e.params.WordsPerMinute
		sig.DurationSource = entities.SourceEstimated
	default:
		sig.DurationSource = entities.SourceUnknown
	}
	sig.DurationBucket = bucketFor(sig.DurationMinutes, sig.DurationSource)

	return sig
}

func bucketFor(minutes float64, source entities.SignalSource) entities.DurationBucket {
	if source == entities.SourceUnknown {
		return entities.DurationUnknown
	}
	switch {
	case minutes <= 20:
		return entities.DurationUnder20m
	case minutes >= 60 && minutes <= 120:
		return entities.Duration1hTo2h
	case minutes > 120 && minutes <= 240:
		return entities.Duration2hTo4h
	default:
		return entities.DurationOther
	}
}

// isRoundRobin looks for runs of short turns where the speaker changes every
// turn. Runs involving at least three speakers must cover half of all turns.
func isRoundRobin(turns []transcript.Turn, shortWords int) bool {
	if len(turns) < 3 {
		return false
	}

	covered := 0
	var run []transcript.Turn
	flush := func() {
		speakers := make(map[string]struct{}, len(run))
		for _, t := range run {
			speakers[t.Speaker] = struct{}{}
		}
		if len(speakers) >= 3 {
			covered += len(run)
		}
		run = run[:0]
	}

	for _, t := range turns {
		short := t.Words < shortWords
		if short && len(run) > 0 && run[len(run)-1].Speaker != t.Speaker {
			run = append(run, t)
			continue
		}
		flush()
		if short {
			run = append(run, t)
		}
	}
	flush()

	return covered*2 >= len(turns)
}

func isDominantSpeaker(turns []transcript.Turn, speakerCount int, share float64) bool {
	if speakerCount < 2 {
		return false
	}
	words := make(map[string]int, speakerCount)
	total := 0
	for _, t := range turns {
		words[t.Speaker] += t.Words
		total += t.Words
	}
	if total == 0 {
		return false
	}
	for _, n := range words {
		if float64(n)/float64(total) > share {
			return true
		}
	}
	return false
}

func isTwoPartyDialogue(turns []transcript.Turn, speakerCount int, share float64) bool {
	if speakerCount != 2 || len(turns) < 2 {
		return false
	}
	changes := 0
	for i := 1; i < len(turns); i++ {
		if turns[i].Speaker != turns[i-1].Speaker {
			changes++
		}
	}
	return float64(changes)/float64(len(turns)-1) >= share
}

func matchPattern(text string, spec PatternSpec) bool {
	if len(spec.AllOf) == 0 && len(spec.AnyOf) == 0 {
		return false
	}
	for _, group := range spec.AllOf {
		found := false
		for _, term := range group {
			if hasWordPrefix(text, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(spec.AnyOf) > 0 {
		need := spec.MinDistinct
		if need < 1 {
			need = 1
		}
		distinct := 0
		for _, term := range spec.AnyOf {
			if hasWordPrefix(text, term) {
				distinct++
			}
		}
		if distinct < need {
			return false
		}
	}
	return true
}
