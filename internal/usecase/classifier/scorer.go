package classifier

import (
	"math"
	"sort"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// structuralBonus awards a fixed score to one type when its signal is present
type structuralBonus struct {
	signal  string
	target  entities.MeetingType
	present func(entities.SignalSet) bool
	amount  func(Bonuses) float64
}

var structuralBonuses = []structuralBonus{
	{"round_robin", entities.MeetingTypeStandup,
		func(s entities.SignalSet) bool { return s.RoundRobin },
		func(b Bonuses) float64 { return b.RoundRobin }},
	{"status_update", entities.MeetingTypeStandup,
		func(s entities.SignalSet) bool { return s.StatusUpdate },
		func(b Bonuses) float64 { return b.StatusUpdate }},
	{"pair_participants", entities.MeetingTypeOneOnOne,
		func(s entities.SignalSet) bool { return s.ParticipantCount == 2 },
		func(b Bonuses) float64 { return b.PairParticipants }},
	{"two_party_dialogue", entities.MeetingTypeOneOnOne,
		func(s entities.SignalSet) bool { return s.TwoPartyDialogue },
		func(b Bonuses) float64 { return b.TwoPartyDialogue }},
	{"dominant_speaker", entities.MeetingTypePresentation,
		func(s entities.SignalSet) bool { return s.DominantSpeaker },
		func(b Bonuses) float64 { return b.DominantSpeaker }},
	{"retro_structure", entities.MeetingTypeRetrospective,
		func(s entities.SignalSet) bool { return s.RetroStructure },
		func(b Bonuses) float64 { return b.RetroStructure }},
	{"story_estimation", entities.MeetingTypeSprintPlanning,
		func(s entities.SignalSet) bool { return s.StoryEstimation },
		func(b Bonuses) float64 { return b.StoryEstimation }},
	{"technical_deep_dive", entities.MeetingTypeArchitecture,
		func(s entities.SignalSet) bool { return s.TechnicalDeepDive },
		func(b Bonuses) float64 { return b.TechnicalDeepDive }},
	{"external_participant", entities.MeetingTypeClient,
		func(s entities.SignalSet) bool { return s.ExternalParticipant },
		func(b Bonuses) float64 { return b.External }},
}

// Scorer turns a SignalSet into one TypeScore per specialized type
type Scorer struct {
	params   Params
	taxonomy *Taxonomy
}

// NewScorer creates a scorer
func NewScorer(tax *Taxonomy, params Params) *Scorer {
	return &Scorer{params: params, taxonomy: tax}
}

// Score is deterministic: identical signals and adjustments give identical scores.
// General is never scored.
func (s *Scorer) Score(sig entities.SignalSet, adj entities.Adjustments) []entities.TypeScore {
	scores := make([]entities.TypeScore, 0, len(entities.Specialized()))

	for _, mt := range entities.Specialized() {
		var score float64
		var matched []string

		hits := sig.Hits(mt)
		if hits > s.params.KeywordCap {
			hits = s.params.KeywordCap
		}
		if hits > 0 {
			score += float64(hits) * s.params.KeywordWeight * adj.Multiplier(mt)
			for _, kw := range sig.MatchedKeywords[mt] {
				matched = append(matched, "keyword:"+kw)
			}
		}

		for _, b := range structuralBonuses {
			if b.target == mt && b.present(sig) {
				score += b.amount(s.params.Bonuses)
				matched = append(matched, b.signal)
			}
		}

		if sig.HasTitleMatch(mt) {
			score += s.params.Bonuses.Title
			matched = append(matched, "title")
		}

		if profile, ok := s.taxonomy.Types[mt]; ok && profile.Duration.Contains(sig.DurationMinutes) {
			switch sig.DurationSource {
			case entities.SourceDeclared:
				score += s.params.Bonuses.DeclaredDuration
				matched = append(matched, "duration:declared")
			case entities.SourceEstimated:
				score += s.params.Bonuses.EstimatedDuration
				matched = append(matched, "duration:estimated")
			}
		}

		sort.Strings(matched)
		scores = append(scores, entities.TypeScore{
			Type:           mt,
			RawScore:       round4(score),
			MatchedSignals: matched,
		})
	}
	return scores
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
