package gate

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Resolution is the final, user-accepted meeting type of one classification.
// Only the Gate can construct one, so nothing downstream can act on a tentative type.
type Resolution struct {
	classificationID uuid.UUID
	finalType        entities.MeetingType
	kind             entities.ResolutionKind
	confidence       int
	path             []entities.RuleStep
	signals          entities.SignalSet
	resolvedBy       string
	resolvedAt       time.Time
}

func (r Resolution) ClassificationID() uuid.UUID         { return r.classificationID }
func (r Resolution) FinalType() entities.MeetingType     { return r.finalType }
func (r Resolution) Kind() entities.ResolutionKind       { return r.kind }
func (r Resolution) ConfidencePercent() int              { return r.confidence }
func (r Resolution) ResolutionPath() []entities.RuleStep { return r.path }
func (r Resolution) Signals() entities.SignalSet         { return r.signals }
func (r Resolution) ResolvedBy() string                  { return r.resolvedBy }
func (r Resolution) ResolvedAt() time.Time               { return r.resolvedAt }

// IsZero reports whether r was never issued by a gate
func (r Resolution) IsZero() bool {
	return r.finalType == ""
}

type resolutionJSON struct {
	ClassificationID  uuid.UUID               `json:"classification_id"`
	FinalType         entities.MeetingType    `json:"final_type"`
	Kind              entities.ResolutionKind `json:"kind"`
	ConfidencePercent int                     `json:"confidence_percent"`
	ResolvedBy        string                  `json:"resolved_by,omitempty"`
	ResolvedAt        time.Time               `json:"resolved_at"`
}

func (r Resolution) MarshalJSON() ([]byte, error) {
	return json.Marshal(resolutionJSON{
		ClassificationID:  r.classificationID,
		FinalType:         r.finalType,
		Kind:              r.kind,
		ConfidencePercent: r.confidence,
		ResolvedBy:        r.resolvedBy,
		ResolvedAt:        r.resolvedAt,
	})
}
