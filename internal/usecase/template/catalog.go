package template

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

//go:embed contracts.yaml
var defaultContracts []byte

// Catalog holds one contract per meeting type. It is read-only after loading.
type Catalog struct {
	contracts map[entities.MeetingType]entities.TemplateContract
}

type catalogFile struct {
	Contracts []entities.TemplateContract `yaml:"contracts"`
}

// DefaultCatalog returns the embedded contracts
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultContracts)
	if err != nil {
		panic(fmt.Sprintf("embedded template contracts are invalid: %v", err))
	}
	return c
}

// LoadCatalog reads contracts from path, or the embedded set when path is empty
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template contracts: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes contracts and checks that every meeting type has exactly one
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse template contracts: %w", err)
	}

	c := &Catalog{contracts: make(map[entities.MeetingType]entities.TemplateContract, len(file.Contracts))}
	for _, contract := range file.Contracts {
		if !contract.Type.IsValid() {
			return nil, fmt.Errorf("template %q: %w: %q", contract.TemplateID, entities.ErrUnknownMeetingType, contract.Type)
		}
		if contract.TemplateID == "" {
			return nil, fmt.Errorf("template for %s has no template_id", contract.Type)
		}
		if _, dup := c.contracts[contract.Type]; dup {
			return nil, fmt.Errorf("duplicate template for %s", contract.Type)
		}
		if len(contract.Fields) == 0 {
			return nil, fmt.Errorf("template %q has no fields", contract.TemplateID)
		}
		for _, f := range contract.Fields {
			switch f.Kind {
			case entities.FieldKindText, entities.FieldKindList, entities.FieldKindItems, entities.FieldKindObject:
			default:
				return nil, fmt.Errorf("template %q field %q: unknown kind %q", contract.TemplateID, f.Name, f.Kind)
			}
		}
		c.contracts[contract.Type] = contract
	}

	for _, t := range entities.AllMeetingTypes() {
		if _, ok := c.contracts[t]; !ok {
			return nil, fmt.Errorf("%w: %s", entities.ErrContractNotFound, t)
		}
	}
	return c, nil
}

// Contract returns the contract for a meeting type
func (c *Catalog) Contract(t entities.MeetingType) (entities.TemplateContract, bool) {
	contract, ok := c.contracts[t]
	return contract, ok
}

// Contracts lists every contract in canonical meeting type order
func (c *Catalog) Contracts() []entities.TemplateContract {
	out := make([]entities.TemplateContract, 0, len(c.contracts))
	for _, t := range entities.AllMeetingTypes() {
		if contract, ok := c.contracts[t]; ok {
			out = append(out, contract)
		}
	}
	return out
}
