package classifier

import (
	"math"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// ruleInput is what every decision rule sees
type ruleInput struct {
	signals entities.SignalSet
	scores  map[entities.MeetingType]float64
	params  Params
}

func (in ruleInput) score(t entities.MeetingType) float64 {
	return in.scores[t]
}

// Rule is one node of the precedence-ordered decision tree. Rules are evaluated
// in slice order and the first whose predicate holds decides the type.
type Rule struct {
	Number     int
	Name       string
	Type       entities.MeetingType
	Applies    func(in ruleInput) bool
	Confidence func(in ruleInput) int
}

// DefaultRules returns the decision tree. Participant-count signals outrank
// keyword density, so the order must not change.
func DefaultRules() []Rule {
	return []Rule{
		{
			Number: 1,
			Name:   "one_on_one_pair",
			Type:   entities.MeetingTypeOneOnOne,
			Applies: func(in ruleInput) bool {
				return in.signals.ParticipantCount == 2 &&
					in.score(entities.MeetingTypeOneOnOne) >= in.params.StrongThreshold()
			},
			Confidence: func(in ruleInput) int {
				return scaleConfidence(in.score(entities.MeetingTypeOneOnOne), in.params.StrongThreshold(), in.params.HighConfidenceFloor)
			},
		},
		{
			Number: 2,
			Name:   "standup_round_robin",
			Type:   entities.MeetingTypeStandup,
			Applies: func(in ruleInput) bool {
				return in.signals.DurationBucket == entities.DurationUnder20m &&
					in.signals.RoundRobin &&
					in.score(entities.MeetingTypeStandup) > 0
			},
			Confidence: func(in ruleInput) int {
				return scaleConfidence(in.score(entities.MeetingTypeStandup), in.params.StrongThreshold(), in.params.HighConfidenceFloor)
			},
		},
		strongKeywordRule(3, "sprint_planning_keywords", entities.MeetingTypeSprintPlanning),
		strongKeywordRule(4, "retrospective_keywords", entities.MeetingTypeRetrospective),
		strongKeywordRule(5, "architecture_keywords", entities.MeetingTypeArchitecture),
		{
			Number: 6,
			Name:   "client_signals",
			Type:   entities.MeetingTypeClient,
			Applies: func(in ruleInput) bool {
				return in.signals.ExternalParticipant ||
					in.score(entities.MeetingTypeClient) >= in.params.MediumThreshold()
			},
			Confidence: func(in ruleInput) int {
				score := in.score(entities.MeetingTypeClient)
				threshold := in.params.MediumThreshold()
				if score >= threshold {
					return scaleConfidence(score, threshold, in.params.BaseConfidenceFloor)
				}
				// Only the external participant flag fired: stay below the
				// auto-accept floor so the user is asked.
				conf := 50 + 20*score/threshold
				return int(math.Min(math.Floor(conf), in.params.BaseConfidenceFloor-1))
			},
		},
		{
			Number: 7,
			Name:   "presentation_dominant",
			Type:   entities.MeetingTypePresentation,
			Applies: func(in ruleInput) bool {
				return in.signals.DominantSpeaker &&
					in.score(entities.MeetingTypePresentation) >= in.params.MediumThreshold()
			},
			Confidence: func(in ruleInput) int {
				return scaleConfidence(in.score(entities.MeetingTypePresentation), in.params.MediumThreshold(), in.params.BaseConfidenceFloor)
			},
		},
		{
			Number:     8,
			Name:       "general_fallback",
			Type:       entities.MeetingTypeGeneral,
			Applies:    func(ruleInput) bool { return true },
			Confidence: func(ruleInput) int { return 0 },
		},
	}
}

func strongKeywordRule(number int, name string, t entities.MeetingType) Rule {
	return Rule{
		Number: number,
		Name:   name,
		Type:   t,
		Applies: func(in ruleInput) bool {
			return in.score(t) >= in.params.StrongThreshold()
		},
		Confidence: func(in ruleInput) int {
			return scaleConfidence(in.score(t), in.params.StrongThreshold(), in.params.BaseConfidenceFloor)
		},
	}
}

// scaleConfidence maps a score onto [floor, 100]: floor at the threshold,
// rising linearly to 100 at twice the threshold.
func scaleConfidence(score, threshold, floor float64) int {
	if threshold <= 0 {
		return int(floor)
	}
	v := floor + (100-floor)*(score-threshold)/threshold
	v = math.Max(floor, math.Min(100, v))
	return int(math.Round(v))
}
