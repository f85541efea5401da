package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
)

// Parser turns raw LLM output into a field map
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes the JSON object in an LLM response. Markdown fences and prose
// around the object are tolerated; anything else is a malformed extract.
func (p *Parser) Parse(raw string) (map[string]any, error) {
	content := extractJSON(raw)
	if content == "" {
		return nil, fmt.Errorf("%w: empty response", ucErrors.ErrMalformedExtract)
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ucErrors.ErrMalformedExtract, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: response is not a JSON object", ucErrors.ErrMalformedExtract)
	}
	return out, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}
	content = strings.TrimSpace(content)

	// "Here is the summary: {...}"
	if !strings.HasPrefix(content, "{") {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end < start {
			return content
		}
		content = content[start : end+1]
	}
	return content
}
