package classifier

import "github.com/johnquangdev/meeting-summarizer/pkg/config"

// Bonuses are the fixed score contributions of structural and metadata signals
type Bonuses struct {
	RoundRobin        float64
	StatusUpdate      float64
	PairParticipants  float64
	TwoPartyDialogue  float64
	DominantSpeaker   float64
	RetroStructure    float64
	StoryEstimation   float64
	TechnicalDeepDive float64
	External          float64
	Title             float64
	DeclaredDuration  float64
	EstimatedDuration float64
}

// Params are the tunable constants of the classifier
type Params struct {
	KeywordWeight float64
	KeywordCap    int

	// Rule thresholds in keyword-equivalents (multiplied by KeywordWeight)
	StrongMatches float64
	MediumMatches float64

	HighConfidenceFloor float64
	BaseConfidenceFloor float64

	WordsPerMinute     float64
	ShortTurnWords     int
	DominantShare      float64
	AlternationShare   float64
	MinTranscriptWords int

	AmbiguityRatio   float64
	AmbiguityPenalty int

	Bonuses Bonuses
}

// DefaultParams returns the standard tuning
func DefaultParams() Params {
	return Params{
		KeywordWeight:       3,
		KeywordCap:          5,
		StrongMatches:       3,
		MediumMatches:       2,
		HighConfidenceFloor: 90,
		BaseConfidenceFloor: 70,
		WordsPerMinute:      130,
		ShortTurnWords:      60,
		DominantShare:       0.7,
		AlternationShare:    0.6,
		MinTranscriptWords:  100,
		AmbiguityRatio:      0.8,
		AmbiguityPenalty:    15,
		Bonuses: Bonuses{
			RoundRobin:        3,
			StatusUpdate:      2,
			PairParticipants:  3,
			TwoPartyDialogue:  1,
			DominantSpeaker:   2,
			RetroStructure:    3,
			StoryEstimation:   3,
			TechnicalDeepDive: 2,
			External:          3,
			Title:             3,
			DeclaredDuration:  1,
			EstimatedDuration: 0.5,
		},
	}
}

// StrongThreshold is the raw score of a 3-keyword match
func (p Params) StrongThreshold() float64 {
	return p.StrongMatches * p.KeywordWeight
}

// MediumThreshold is the raw score of a 2-keyword match
func (p Params) MediumThreshold() float64 {
	return p.MediumMatches * p.KeywordWeight
}

// ParamsFromConfig applies the CLASSIFIER_* tuning on top of the defaults
func ParamsFromConfig(cfg config.ClassifierConfig) Params {
	p := DefaultParams()
	if cfg.KeywordWeight > 0 {
		p.KeywordWeight = cfg.KeywordWeight
	}
	if cfg.KeywordCap > 0 {
		p.KeywordCap = cfg.KeywordCap
	}
	if cfg.WordsPerMinute > 0 {
		p.WordsPerMinute = cfg.WordsPerMinute
	}
	if cfg.ShortTurnWords > 0 {
		p.ShortTurnWords = cfg.ShortTurnWords
	}
	if cfg.DominantShare > 0 {
		p.DominantShare = cfg.DominantShare
	}
	if cfg.AlternationShare > 0 {
		p.AlternationShare = cfg.AlternationShare
	}
	if cfg.MinTranscriptWords > 0 {
		p.MinTranscriptWords = cfg.MinTranscriptWords
	}
	if cfg.AmbiguityRatio > 0 {
		p.AmbiguityRatio = cfg.AmbiguityRatio
	}
	if cfg.AmbiguityPenalty >= 0 {
		p.AmbiguityPenalty = cfg.AmbiguityPenalty
	}
	return p
}
