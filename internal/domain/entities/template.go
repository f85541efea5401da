package entities

import (
	"fmt"
	"strings"
)

// NotCaptured is rendered in place of a required field the extractor did not return
const NotCaptured = "not captured"

// FieldKind is the shape a template field is expected to have
type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindList   FieldKind = "list"
	FieldKindItems  FieldKind = "items"
	FieldKindObject FieldKind = "object"
)

// FieldSpec describes one required field of a template. Properties names the
// keys of each entry of an items field, or of an object field.
type FieldSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Properties  []string  `json:"properties,omitempty" yaml:"properties"`
}

// TemplateContract is the field set a rendering template expects
type TemplateContract struct {
	TemplateID string      `json:"template_id" yaml:"template_id"`
	Type       MeetingType `json:"type" yaml:"type"`
	Fields     []FieldSpec `json:"fields" yaml:"fields"`
	Guidelines string      `json:"guidelines,omitempty" yaml:"guidelines"`
}

// FieldNames returns the required field names in template order
func (c TemplateContract) FieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Apply checks extracted content against the contract. Fields that are absent,
// null or empty are set to NotCaptured and listed in Missing; keys the contract
// does not name are dropped. Values are never invented.
func (c TemplateContract) Apply(content map[string]any) RenderInput {
	in := RenderInput{
		FinalType:  c.Type,
		TemplateID: c.TemplateID,
		Fields:     make(map[string]any, len(c.Fields)),
	}
	for _, f := range c.Fields {
		v, ok := f.accept(content[f.Name])
		if !ok {
			in.Fields[f.Name] = NotCaptured
			in.Missing = append(in.Missing, f.Name)
			continue
		}
		in.Fields[f.Name] = v
	}
	return in
}

func (f FieldSpec) accept(raw any) (any, bool) {
	switch f.Kind {
	case FieldKindList:
		var out []string
		switch v := raw.(type) {
		case []any:
			for _, item := range v {
				if s, ok := scalarText(item); ok {
					out = append(out, s)
				}
			}
		case []string:
			for _, item := range v {
				if s, ok := scalarText(item); ok {
					out = append(out, s)
				}
			}
		default:
			if s, ok := scalarText(raw); ok {
				out = append(out, s)
			}
		}
		return out, len(out) > 0
	case FieldKindItems:
		items, ok := raw.([]any)
		if !ok {
			return nil, false
		}
		var out []map[string]any
		for _, item := range items {
			if m, ok := item.(map[string]any); ok && len(m) > 0 {
				out = append(out, m)
			}
		}
		return out, len(out) > 0
	case FieldKindObject:
		m, ok := raw.(map[string]any)
		return m, ok && len(m) > 0
	default:
		return scalarText(raw)
	}
}

func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64, int, int64, bool:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

// RenderInput is everything the rendering layer needs for one report
type RenderInput struct {
	FinalType         MeetingType    `json:"final_type"`
	TemplateID        string         `json:"template_id"`
	ConfidencePercent int            `json:"confidence_percent"`
	ResolutionPath    []RuleStep     `json:"resolution_path"`
	Signals           SignalSet      `json:"signals"`
	Fields            map[string]any `json:"fields"`
	Missing           []string       `json:"missing,omitempty"`
}

// ActionItem is the structured shape of an "items" field entry
type ActionItem struct {
	Task     string `json:"task" jsonschema:"description=What needs to be done"`
	Owner    string `json:"owner" jsonschema:"description=Person responsible or Unassigned"`
	Deadline string `json:"deadline" jsonschema:"description=Due date if mentioned or empty"`
	Priority string `json:"priority" jsonschema:"enum=high,enum=medium,enum=low"`
}
