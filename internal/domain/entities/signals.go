package entities

// DurationBucket is the coarse duration class used by the decision rules
type DurationBucket string

const (
	DurationUnder20m DurationBucket = "under_20m"
	Duration1hTo2h   DurationBucket = "1h_2h"
	Duration2hTo4h   DurationBucket = "2h_4h"
	DurationOther    DurationBucket = "other"
	DurationUnknown  DurationBucket = "unknown"
)

// SignalSource tells whether a value was supplied by the caller or derived
type SignalSource string

const (
	SourceDeclared  SignalSource = "declared"
	SourceEstimated SignalSource = "estimated"
	SourceDetected  SignalSource = "detected"
	SourceUnknown   SignalSource = "unknown"
)

// SignalSet holds every feature derived from one transcript and its metadata.
// It is produced once per classification and never mutated afterwards.
type SignalSet struct {
	KeywordHits     map[MeetingType]int      `json:"keyword_hits"`
	MatchedKeywords map[MeetingType][]string `json:"matched_keywords,omitempty"`
	TitleMatches    []MeetingType            `json:"title_matches,omitempty"`

	RoundRobin       bool `json:"round_robin"`
	DominantSpeaker  bool `json:"dominant_speaker"`
	TwoPartyDialogue bool `json:"two_party_dialogue"`

	StatusUpdate      bool `json:"status_update"`
	RetroStructure    bool `json:"retro_structure"`
	StoryEstimation   bool `json:"story_estimation"`
	TechnicalDeepDive bool `json:"technical_deep_dive"`

	ParticipantCount    int          `json:"participant_count"`
	ParticipantSource   SignalSource `json:"participant_source"`
	ExternalParticipant bool         `json:"external_participant"`

	DurationMinutes float64        `json:"duration_minutes"`
	DurationSource  SignalSource   `json:"duration_source"`
	DurationBucket  DurationBucket `json:"duration_bucket"`

	WordCount    int `json:"word_count"`
	SpeakerCount int `json:"speaker_count"`
	TurnCount    int `json:"turn_count"`
}

// Hits returns the keyword hit count for a meeting type
func (s SignalSet) Hits(t MeetingType) int {
	return s.KeywordHits[t]
}

// HasTitleMatch reports whether the title named the meeting type
func (s SignalSet) HasTitleMatch(t MeetingType) bool {
	for _, m := range s.TitleMatches {
		if m == t {
			return true
		}
	}
	return false
}
