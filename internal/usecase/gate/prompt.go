package gate

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Alternative is one selectable answer to a prompt
type Alternative struct {
	Type        entities.MeetingType `json:"type"`
	DisplayName string               `json:"display_name"`
}

// Prompt asks the user to confirm or correct a tentative meeting type
type Prompt struct {
	TentativeType     entities.MeetingType `json:"tentative_type"`
	ConfidencePercent int                  `json:"confidence_percent"`
	Message           string               `json:"message"`
	Alternatives      []Alternative        `json:"alternatives"`
	ResolutionPath    []entities.RuleStep  `json:"resolution_path"`
	Notices           []entities.Notice    `json:"notices,omitempty"`
}

func newPrompt(result entities.ClassificationResult) *Prompt {
	alternatives := make([]Alternative, 0, len(entities.AllMeetingTypes()))
	names := make([]string, 0, len(entities.AllMeetingTypes()))
	for _, t := range entities.AllMeetingTypes() {
		alternatives = append(alternatives, Alternative{Type: t, DisplayName: t.DisplayName()})
		names = append(names, t.DisplayName())
	}

	return &Prompt{
		TentativeType:     result.ChosenType,
		ConfidencePercent: result.ConfidencePercent,
		Message: fmt.Sprintf(
			"Based on my analysis, this appears to be a **%s** meeting (confidence: %d%%). Is this correct?\n\nAvailable types: %s.",
			result.ChosenType.DisplayName(), result.ConfidencePercent, strings.Join(names, ", ")),
		Alternatives:   alternatives,
		ResolutionPath: result.ResolutionPath,
		Notices:        result.Notices,
	}
}
