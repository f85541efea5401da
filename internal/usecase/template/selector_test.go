package template

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/gate"
)

func resolved(t *testing.T, mt entities.MeetingType) gate.Resolution {
	t.Helper()
	d := gate.New(0, nil, nil).Open(uuid.New(), entities.ClassificationResult{
		ChosenType:        mt,
		ConfidencePercent: 88,
		ResolutionPath:    []entities.RuleStep{{Rule: 3, Name: "sprint_planning_keywords", Fired: true}},
	})
	if d.Resolution == nil {
		t.Fatal("expected an automatic resolution")
	}
	return *d.Resolution
}

func TestDefaultCatalog_OneContractPerType(t *testing.T) {
	catalog := DefaultCatalog()
	contracts := catalog.Contracts()
	if len(contracts) != len(entities.AllMeetingTypes()) {
		t.Fatalf("expected %d contracts, got %d", len(entities.AllMeetingTypes()), len(contracts))
	}
	for i, mt := range entities.AllMeetingTypes() {
		if contracts[i].Type != mt {
			t.Errorf("contract %d: expected %s, got %s", i, mt, contracts[i].Type)
		}
		if contracts[i].Guidelines == "" {
			t.Errorf("contract %s has no guidelines", mt)
		}
	}
}

func TestSelector_Select(t *testing.T) {
	s := NewSelector(nil)

	contract, err := s.Select(resolved(t, entities.MeetingTypeRetrospective))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contract.TemplateID != "retrospective_report" {
		t.Fatalf("expected retrospective_report, got %s", contract.TemplateID)
	}

	if _, err := s.Select(gate.Resolution{}); !errors.Is(err, ucErrors.ErrNotResolved) {
		t.Fatalf("expected ErrNotResolved for a zero resolution, got %v", err)
	}
}

func TestSelector_RenderFillsPlaceholders(t *testing.T) {
	s := NewSelector(nil)
	res := resolved(t, entities.MeetingTypeGeneral)

	in, err := s.Render(res, map[string]any{
		"tldr":           "  Budget approved.  ",
		"attendees":      []any{"Ana", "", "Ben", nil},
		"key_topics":     []any{},
		"decisions":      nil,
		"action_items":   []any{map[string]any{"task": "Send notes", "owner": "Ana"}, "stray"},
		"open_questions": "Who owns QA?",
		"invented_field": "dropped",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.FinalType != entities.MeetingTypeGeneral || in.TemplateID != "general_report" {
		t.Fatalf("unexpected template: %s %s", in.FinalType, in.TemplateID)
	}
	if in.ConfidencePercent != 88 || len(in.ResolutionPath) != 1 {
		t.Fatalf("resolution details not carried: %+v", in)
	}
	if in.Fields["tldr"] != "Budget approved." {
		t.Errorf("unexpected tldr %q", in.Fields["tldr"])
	}
	if got := in.Fields["attendees"]; !reflect.DeepEqual(got, []string{"Ana", "Ben"}) {
		t.Errorf("unexpected attendees %v", got)
	}
	if got := in.Fields["open_questions"]; !reflect.DeepEqual(got, []string{"Who owns QA?"}) {
		t.Errorf("a single string should become a one-item list, got %v", got)
	}
	if items, ok := in.Fields["action_items"].([]map[string]any); !ok || len(items) != 1 {
		t.Errorf("expected one action item, got %v", in.Fields["action_items"])
	}
	if _, ok := in.Fields["invented_field"]; ok {
		t.Error("unknown fields must be dropped")
	}

	wantMissing := []string{"duration_estimate", "key_topics", "decisions", "next_steps"}
	if !reflect.DeepEqual(in.Missing, wantMissing) {
		t.Fatalf("expected missing %v, got %v", wantMissing, in.Missing)
	}
	for _, name := range wantMissing {
		if in.Fields[name] != entities.NotCaptured {
			t.Errorf("field %s should be %q, got %v", name, entities.NotCaptured, in.Fields[name])
		}
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "contracts: ["},
		{"unknown type", "contracts:\n  - {template_id: x, type: brainstorm, fields: [{name: a, kind: text}]}\n"},
		{"unknown kind", "contracts:\n  - {template_id: x, type: general, fields: [{name: a, kind: table}]}\n"},
		{"incomplete", "contracts:\n  - {template_id: x, type: general, fields: [{name: a, kind: text}]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
