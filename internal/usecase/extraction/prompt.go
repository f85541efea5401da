package extraction

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

const commonGuidelines = `- If nothing was said for a field, return an empty string or an empty array; never invent content
- If no action items are found, return an empty array for "action_items"
- Infer priority based on urgency language:
  - "ASAP", "urgent", "critical", "immediately" = high
  - "soon", "this week", standard tasks = medium
  - "when possible", "eventually", "low priority" = low
- Extract deadlines in readable format (e.g., "December 15", "Next Monday", "End of week")
- If the owner of an action item is unclear, set owner to "Unassigned"
- Keep the TL;DR concise - under 50 words`

// SystemPrompt describes the report a contract expects
func SystemPrompt(contract entities.TemplateContract) string {
	var sb strings.Builder
	sb.WriteString("You are an expert meeting analyst. Your task is to analyze meeting transcripts and extract key information in a structured format.\n\n")
	fmt.Fprintf(&sb, "This is a **%s** meeting. Analyze the provided transcript and return ONLY valid JSON with exactly these fields:\n\n", contract.Type.DisplayName())

	for _, f := range contract.Fields {
		fmt.Fprintf(&sb, "- %q (%s)", f.Name, fieldShape(f))
		if f.Description != "" {
			sb.WriteString(": " + f.Description)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nGuidelines:\n")
	if g := strings.TrimSpace(contract.Guidelines); g != "" {
		sb.WriteString(g + "\n")
	}
	sb.WriteString(commonGuidelines)
	sb.WriteString("\n\nReturn ONLY the JSON object, no additional text or markdown formatting.")
	return sb.String()
}

// UserPrompt wraps one chunk of the transcript
func UserPrompt(chunk Chunk) string {
	if chunk.Total <= 1 {
		return "Meeting transcript:\n\n" + chunk.Text
	}
	return fmt.Sprintf("This is part %d of %d of a long meeting transcript. Extract only what this part contains; the parts are merged afterwards.\n\nTranscript part:\n\n%s",
		chunk.Index, chunk.Total, chunk.Text)
}

func fieldShape(f entities.FieldSpec) string {
	switch f.Kind {
	case entities.FieldKindList:
		return "array of strings"
	case entities.FieldKindItems:
		if len(f.Properties) == 0 {
			return "array of {task, owner, deadline, priority}"
		}
		return "array of {" + strings.Join(f.Properties, ", ") + "}"
	case entities.FieldKindObject:
		return "object {" + strings.Join(f.Properties, ", ") + "}"
	default:
		return "string"
	}
}
