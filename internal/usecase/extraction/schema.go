package extraction

import (
	"github.com/invopop/jsonschema"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

var reflector = jsonschema.Reflector{
	AllowAdditionalProperties: false,
	DoNotReference:            true,
}

// BuildSchema returns the JSON schema an extractor's answer must satisfy for
// a contract. Every field is required, so strict structured output can be used.
func BuildSchema(contract entities.TemplateContract) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	required := make([]string, 0, len(contract.Fields))
	for _, f := range contract.Fields {
		props.Set(f.Name, fieldSchema(f))
		required = append(required, f.Name)
	}
	return &jsonschema.Schema{
		Type:                 "object",
		Title:                contract.TemplateID,
		Properties:           props,
		Required:             required,
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func fieldSchema(f entities.FieldSpec) *jsonschema.Schema {
	switch f.Kind {
	case entities.FieldKindList:
		return &jsonschema.Schema{
			Type:        "array",
			Description: f.Description,
			Items:       &jsonschema.Schema{Type: "string"},
		}
	case entities.FieldKindItems:
		item := objectSchema(f.Properties)
		if len(f.Properties) == 0 {
			item = actionItemSchema()
		}
		return &jsonschema.Schema{
			Type:        "array",
			Description: f.Description,
			Items:       item,
		}
	case entities.FieldKindObject:
		s := objectSchema(f.Properties)
		s.Description = f.Description
		return s
	default:
		return &jsonschema.Schema{Type: "string", Description: f.Description}
	}
}

// objectSchema describes an object whose listed properties are free-form strings
// or string lists.
func objectSchema(properties []string) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	for _, name := range properties {
		props.Set(name, &jsonschema.Schema{
			AnyOf: []*jsonschema.Schema{
				{Type: "string"},
				{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			},
		})
	}
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             append([]string(nil), properties...),
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func actionItemSchema() *jsonschema.Schema {
	s := reflector.Reflect(&entities.ActionItem{})
	s.Version = ""
	s.ID = ""
	return s
}
