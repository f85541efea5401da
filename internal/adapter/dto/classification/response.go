package classification

import (
	"time"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/gate"
)

// ClassificationResponse represents one classification and its gate state
type ClassificationResponse struct {
	ID                 string                        `json:"id"`
	State              string                        `json:"state"`
	Source             string                        `json:"source"`
	SourceRef          string                        `json:"source_ref,omitempty"`
	Metadata           entities.TranscriptMetadata   `json:"metadata"`
	Result             entities.ClassificationResult `json:"result"`
	Prompt             *gate.Prompt                  `json:"prompt,omitempty"`
	Resolution         *ResolutionResponse           `json:"resolution,omitempty"`
	Notices            []entities.Notice             `json:"notices,omitempty"`
	ExtractionStatus   string                        `json:"extraction_status"`
	ExtractionAttempts int                           `json:"extraction_attempts"`
	LastError          *string                       `json:"last_error,omitempty"`
	CreatedAt          time.Time                     `json:"created_at"`
	UpdatedAt          time.Time                     `json:"updated_at"`
}

// ResolutionResponse is the accepted meeting type
type ResolutionResponse struct {
	FinalType         string    `json:"final_type"`
	DisplayName       string    `json:"display_name"`
	Kind              string    `json:"kind"`
	ConfidencePercent int       `json:"confidence_percent"`
	ResolvedBy        string    `json:"resolved_by,omitempty"`
	ResolvedAt        time.Time `json:"resolved_at"`
}

// ExtractionResponse is a rendered report plus where it was archived
type ExtractionResponse struct {
	ClassificationID string               `json:"classification_id"`
	Attempts         int                  `json:"attempts"`
	ReportKey        string               `json:"report_key,omitempty"`
	Report           entities.RenderInput `json:"report"`
}

// MeetingTypeResponse describes one selectable meeting type
type MeetingTypeResponse struct {
	Type        string   `json:"type"`
	DisplayName string   `json:"display_name"`
	TemplateID  string   `json:"template_id"`
	Fields      []string `json:"fields"`
}

// AdjustmentsResponse is the learning snapshot derived from user corrections
type AdjustmentsResponse struct {
	Overrides   int                `json:"overrides"`
	Multipliers map[string]float64 `json:"multipliers"`
}
