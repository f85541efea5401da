package template

import (
	"fmt"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/gate"
)

// Selector maps a resolved meeting type to its template contract. It only
// accepts a gate.Resolution, so a tentative type can never pick a template.
type Selector struct {
	catalog *Catalog
}

// NewSelector creates a selector. A nil catalog uses the embedded contracts.
func NewSelector(catalog *Catalog) *Selector {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Selector{catalog: catalog}
}

// Catalog returns the contracts in use
func (s *Selector) Catalog() *Catalog {
	return s.catalog
}

// Select is a pure lookup
func (s *Selector) Select(res gate.Resolution) (entities.TemplateContract, error) {
	if res.IsZero() {
		return entities.TemplateContract{}, ucErrors.ErrNotResolved
	}
	contract, ok := s.catalog.Contract(res.FinalType())
	if !ok {
		return entities.TemplateContract{}, fmt.Errorf("%w: %s", ucErrors.ErrTemplateNotFound, res.FinalType())
	}
	return contract, nil
}

// Render builds the render input from extracted content
func (s *Selector) Render(res gate.Resolution, content map[string]any) (entities.RenderInput, error) {
	contract, err := s.Select(res)
	if err != nil {
		return entities.RenderInput{}, err
	}
	in := contract.Apply(content)
	in.ConfidencePercent = res.ConfidencePercent()
	in.ResolutionPath = res.ResolutionPath()
	in.Signals = res.Signals()
	return in, nil
}
