package classifier

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Resolver applies the ordered decision rules to a set of scores
type Resolver struct {
	rules  []Rule
	params Params
}

// NewResolver creates a resolver over the given rules (DefaultRules when nil)
func NewResolver(params Params, rules []Rule) *Resolver {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Resolver{rules: rules, params: params}
}

// Resolve picks exactly one type. The resolution path lists every rule
// evaluated up to and including the one that fired.
func (r *Resolver) Resolve(sig entities.SignalSet, scores []entities.TypeScore) entities.ClassificationResult {
	in := ruleInput{
		signals: sig,
		scores:  make(map[entities.MeetingType]float64, len(scores)),
		params:  r.params,
	}
	for _, s := range scores {
		in.scores[s.Type] = s.RawScore
	}

	result := entities.ClassificationResult{
		ChosenType: entities.MeetingTypeGeneral,
		Scores:     scores,
		Signals:    sig,
	}

	for i, rule := range r.rules {
		step := entities.RuleStep{Rule: rule.Number, Name: rule.Name}
		if !rule.Applies(in) {
			result.ResolutionPath = append(result.ResolutionPath, step)
			continue
		}

		step.Fired = true
		result.ChosenType = rule.Type
		result.ConfidencePercent = rule.Confidence(in)

		if rule.Type != entities.MeetingTypeGeneral {
			step.Shadowed = r.competitors(r.rules[i+1:], in, rule.Type)
			if len(step.Shadowed) > 0 {
				result.Ambiguous = true
				result.ConfidencePercent -= r.params.AmbiguityPenalty
				if result.ConfidencePercent < 0 {
					result.ConfidencePercent = 0
				}
				result.Notices = append(result.Notices, entities.Notice{
					Kind:    entities.NoticeAmbiguousHybridMeeting,
					Message: ambiguityMessage(rule, step.Shadowed),
				})
			}
		}
		result.ResolutionPath = append(result.ResolutionPath, step)
		break
	}

	return result
}

// competitors returns later-ranked types whose rule would also fire with a
// score comparable to the winner's. They never change the outcome.
func (r *Resolver) competitors(later []Rule, in ruleInput, winner entities.MeetingType) []entities.MeetingType {
	winnerScore := in.score(winner)
	var out []entities.MeetingType
	for _, rule := range later {
		if rule.Type == entities.MeetingTypeGeneral || rule.Type == winner {
			continue
		}
		if !rule.Applies(in) {
			continue
		}
		if in.score(rule.Type) >= r.params.AmbiguityRatio*winnerScore {
			out = append(out, rule.Type)
		}
	}
	return out
}

func ambiguityMessage(rule Rule, shadowed []entities.MeetingType) string {
	names := make([]string, 0, len(shadowed))
	for _, t := range shadowed {
		names = append(names, t.DisplayName())
	}
	return fmt.Sprintf("rule %d (%s) chose %s by precedence; comparable evidence for %s",
		rule.Number, rule.Name, rule.Type.DisplayName(), strings.Join(names, ", "))
}
