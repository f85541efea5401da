package classification

// ClassifyRequest represents the request to classify a transcript. Text may
// be plain "Speaker: text" lines or a WebVTT document.
type ClassifyRequest struct {
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Room     string                 `json:"room,omitempty" validate:"omitempty,max=255"`
}

// ClassifyAssemblyAIRequest carries optional metadata for an AssemblyAI transcript
type ClassifyAssemblyAIRequest struct {
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Room     string                 `json:"room,omitempty" validate:"omitempty,max=255"`
}

// DecisionRequest confirms the tentative type (accept=true) or corrects it
type DecisionRequest struct {
	Accept bool   `json:"accept"`
	Type   string `json:"type,omitempty" validate:"omitempty,meeting_type"`
}
