package entities

// TypeScore is the raw score computed for one specialized meeting type
type TypeScore struct {
	Type           MeetingType `json:"type"`
	RawScore       float64     `json:"raw_score"`
	MatchedSignals []string    `json:"matched_signals"`
}

// RuleStep records one decision rule evaluated while resolving a classification
type RuleStep struct {
	Rule     int           `json:"rule"`
	Name     string        `json:"name"`
	Fired    bool          `json:"fired"`
	Shadowed []MeetingType `json:"shadowed,omitempty"`
}

// ClassificationResult is the outcome of one classification run. It is kept
// unchanged for audit; confirmations and corrections are recorded beside it.
type ClassificationResult struct {
	ChosenType          MeetingType `json:"chosen_type"`
	ConfidencePercent   int         `json:"confidence_percent"`
	ResolutionPath      []RuleStep  `json:"resolution_path"`
	Scores              []TypeScore `json:"scores"`
	Signals             SignalSet   `json:"signals"`
	Ambiguous           bool        `json:"ambiguous"`
	InsufficientContent bool        `json:"insufficient_content"`
	Notices             []Notice    `json:"notices,omitempty"`
	Fingerprint         string      `json:"fingerprint"`
}

// FiredRule returns the rule that determined the chosen type
func (r ClassificationResult) FiredRule() (RuleStep, bool) {
	for _, step := range r.ResolutionPath {
		if step.Fired {
			return step, true
		}
	}
	return RuleStep{}, false
}

// EvaluatedRules returns the rule numbers in evaluation order
func (r ClassificationResult) EvaluatedRules() []int {
	rules := make([]int, 0, len(r.ResolutionPath))
	for _, step := range r.ResolutionPath {
		rules = append(rules, step.Rule)
	}
	return rules
}

// ScoreFor returns the score for a meeting type, zero if it was not scored
func (r ClassificationResult) ScoreFor(t MeetingType) TypeScore {
	for _, s := range r.Scores {
		if s.Type == t {
			return s
		}
	}
	return TypeScore{Type: t}
}
