package presenter

import (
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/classification"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
)

// ToClassificationResponse converts a classification to its DTO
func ToClassificationResponse(c *meeting.Classification) *classification.ClassificationResponse {
	if c == nil {
		return nil
	}

	d := c.Decision
	response := &classification.ClassificationResponse{
		ID:                 d.ClassificationID.String(),
		State:              string(d.State),
		Source:             string(c.Source),
		SourceRef:          c.SourceRef,
		Metadata:           c.Metadata,
		Result:             d.Result,
		Prompt:             d.Prompt,
		Notices:            d.Notices,
		ExtractionStatus:   string(c.ExtractionStatus),
		ExtractionAttempts: c.ExtractionAttempts,
		LastError:          c.LastError,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}

	if res := d.Resolution; res != nil {
		response.Resolution = &classification.ResolutionResponse{
			FinalType:         res.FinalType().String(),
			DisplayName:       res.FinalType().DisplayName(),
			Kind:              string(res.Kind()),
			ConfidencePercent: res.ConfidencePercent(),
			ResolvedBy:        res.ResolvedBy(),
			ResolvedAt:        res.ResolvedAt(),
		}
	}

	return response
}

// ToExtractionResponse converts a finished extraction to its DTO
func ToExtractionResponse(out *meeting.ExtractionOutput) *classification.ExtractionResponse {
	return &classification.ExtractionResponse{
		ClassificationID: out.Classification.Decision.ClassificationID.String(),
		Attempts:         out.Attempts,
		ReportKey:        out.ReportKey,
		Report:           out.Report,
	}
}

// ToMeetingTypeResponses converts the meeting type catalog
func ToMeetingTypeResponses(types []meeting.MeetingTypeInfo) []classification.MeetingTypeResponse {
	out := make([]classification.MeetingTypeResponse, len(types))
	for i, t := range types {
		out[i] = classification.MeetingTypeResponse{
			Type:        t.Type.String(),
			DisplayName: t.DisplayName,
			TemplateID:  t.TemplateID,
			Fields:      t.Fields,
		}
	}
	return out
}

// ToAdjustmentsResponse lists a multiplier for every specialized type, 1 when unadjusted
func ToAdjustmentsResponse(adj entities.Adjustments) *classification.AdjustmentsResponse {
	multipliers := make(map[string]float64, len(entities.Specialized()))
	for _, t := range entities.Specialized() {
		multipliers[t.String()] = adj.Multiplier(t)
	}
	return &classification.AdjustmentsResponse{
		Overrides:   adj.Overrides,
		Multipliers: multipliers,
	}
}
