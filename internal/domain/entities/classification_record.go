package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GateState is the confirmation gate state of a classification
type GateState string

const (
	GateStatePending       GateState = "pending"
	GateStateAwaitingInput GateState = "awaiting_input"
	GateStateResolved      GateState = "resolved"
)

// ResolutionKind tells how a classification reached the resolved state
type ResolutionKind string

const (
	ResolutionAuto      ResolutionKind = "auto"
	ResolutionConfirmed ResolutionKind = "confirmed"
	ResolutionCorrected ResolutionKind = "corrected"
)

// ExtractionStatus tracks the external content extraction step
type ExtractionStatus string

const (
	ExtractionNotStarted ExtractionStatus = "not_started"
	ExtractionRunning    ExtractionStatus = "running"
	ExtractionCompleted  ExtractionStatus = "completed"
	ExtractionFailed     ExtractionStatus = "failed"
)

// TranscriptSource identifies where a classified transcript came from
type TranscriptSource string

const (
	SourceText       TranscriptSource = "text"
	SourceAssemblyAI TranscriptSource = "assemblyai"
	SourceWatcher    TranscriptSource = "watcher"
)

// ClassificationRecord is the persisted audit row of one classification. The
// Result column is written once at creation and never updated.
type ClassificationRecord struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primary_key"`
	Fingerprint string           `json:"fingerprint" gorm:"type:varchar(64);not null;index"`
	Source      TranscriptSource `json:"source" gorm:"type:varchar(32);not null;default:'text'"`
	SourceRef   string           `json:"source_ref,omitempty" gorm:"type:varchar(255)"`
	Transcript  string           `json:"-" gorm:"type:text;not null"`

	Metadata datatypes.JSONType[TranscriptMetadata]   `json:"metadata" gorm:"type:jsonb"`
	Result   datatypes.JSONType[ClassificationResult] `json:"result" gorm:"type:jsonb;not null"`

	State      GateState      `json:"state" gorm:"type:varchar(32);not null;index"`
	Resolution ResolutionKind `json:"resolution,omitempty" gorm:"type:varchar(32)"`
	FinalType  MeetingType    `json:"final_type,omitempty" gorm:"type:varchar(50);index"`
	ResolvedBy string         `json:"resolved_by,omitempty" gorm:"type:varchar(255)"`
	ResolvedAt *time.Time     `json:"resolved_at,omitempty"`

	ExtractionStatus   ExtractionStatus `json:"extraction_status" gorm:"type:varchar(32);not null;default:'not_started'"`
	ExtractionAttempts int              `json:"extraction_attempts" gorm:"type:integer;default:0"`
	LastError          *string          `json:"last_error,omitempty" gorm:"type:text"`
	Content            datatypes.JSON   `json:"content,omitempty" gorm:"type:jsonb"`

	Notices datatypes.JSONType[[]Notice] `json:"notices,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName pins the table name used by migrations
func (ClassificationRecord) TableName() string {
	return "classifications"
}

// NewClassificationRecord wraps a fresh classification result
func NewClassificationRecord(id uuid.UUID, text string, meta TranscriptMetadata, result ClassificationResult, source TranscriptSource, ref string) *ClassificationRecord {
	now := time.Now().UTC()
	return &ClassificationRecord{
		ID:               id,
		Fingerprint:      result.Fingerprint,
		Source:           source,
		SourceRef:        ref,
		Transcript:       text,
		Metadata:         datatypes.NewJSONType(meta),
		Result:           datatypes.NewJSONType(result),
		State:            GateStatePending,
		ExtractionStatus: ExtractionNotStarted,
		Notices:          datatypes.NewJSONType([]Notice(nil)),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ClassificationResult returns the original, immutable classification result
func (r *ClassificationRecord) ClassificationResult() ClassificationResult {
	return r.Result.Data()
}

// IsResolved reports whether the meeting type has been accepted or corrected
func (r *ClassificationRecord) IsResolved() bool {
	return r.State == GateStateResolved && r.FinalType != ""
}

// MarkAwaitingInput parks the record until the user answers the prompt
func (r *ClassificationRecord) MarkAwaitingInput() {
	r.State = GateStateAwaitingInput
	r.UpdatedAt = time.Now().UTC()
}

// MarkResolved records the final type and how it was reached
func (r *ClassificationRecord) MarkResolved(kind ResolutionKind, final MeetingType, by string, at time.Time) {
	r.State = GateStateResolved
	r.Resolution = kind
	r.FinalType = final
	r.ResolvedBy = by
	r.ResolvedAt = &at
	r.UpdatedAt = time.Now().UTC()
}

// AddNotices appends decision-time notices
func (r *ClassificationRecord) AddNotices(notices ...Notice) {
	if len(notices) == 0 {
		return
	}
	existing := r.Notices.Data()
	merged := make([]Notice, 0, len(existing)+len(notices))
	merged = append(merged, existing...)
	merged = append(merged, notices...)
	r.Notices = datatypes.NewJSONType(merged)
}

// MarkExtractionRunning records the start of an extraction attempt
func (r *ClassificationRecord) MarkExtractionRunning() {
	r.ExtractionStatus = ExtractionRunning
	r.ExtractionAttempts++
	r.UpdatedAt = time.Now().UTC()
}

// MarkExtractionCompleted stores the render input
func (r *ClassificationRecord) MarkExtractionCompleted(content []byte) {
	r.ExtractionStatus = ExtractionCompleted
	r.Content = datatypes.JSON(content)
	r.LastError = nil
	r.UpdatedAt = time.Now().UTC()
}

// MarkExtractionFailed keeps the resolved type so the extraction can be retried
func (r *ClassificationRecord) MarkExtractionFailed(errMsg string) {
	r.ExtractionStatus = ExtractionFailed
	r.LastError = &errMsg
	r.UpdatedAt = time.Now().UTC()
}
