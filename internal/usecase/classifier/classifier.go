package classifier

import (
	"fmt"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/pkg/transcript"
)

// Classifier runs signal extraction, scoring and resolution. Classification
// is a pure function of (text, metadata, adjustments).
type Classifier struct {
	params    Params
	extractor *Extractor
	scorer    *Scorer
	resolver  *Resolver
}

// New creates a classifier. A nil taxonomy uses the embedded default.
func New(tax *Taxonomy, params Params) *Classifier {
	if tax == nil {
		tax = DefaultTaxonomy()
	}
	return &Classifier{
		params:    params,
		extractor: NewExtractor(tax, params),
		scorer:    NewScorer(tax, params),
		resolver:  NewResolver(params, nil),
	}
}

// Params returns the tuning in use
func (c *Classifier) Params() Params {
	return c.params
}

// Classify produces a fresh ClassificationResult
func (c *Classifier) Classify(text string, meta entities.TranscriptMetadata, adj entities.Adjustments) entities.ClassificationResult {
	signals := c.extractor.Extract(text, meta)
	scores := c.scorer.Score(signals, adj)
	result := c.resolver.Resolve(signals, scores)
	result.Fingerprint = transcript.Fingerprint(text)

	if result.ChosenType == entities.MeetingTypeGeneral && signals.WordCount < c.params.MinTranscriptWords {
		result.InsufficientContent = true
		result.Notices = append(result.Notices, entities.Notice{
			Kind: entities.NoticeInsufficientContent,
			Message: fmt.Sprintf("transcript has %d words (minimum %d); not enough content to identify a meeting type",
				signals.WordCount, c.params.MinTranscriptWords),
		})
	}
	return result
}
