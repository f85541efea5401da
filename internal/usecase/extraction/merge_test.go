package extraction

import (
	"reflect"
	"testing"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

var testContract = entities.TemplateContract{
	TemplateID: "general_report",
	Type:       entities.MeetingTypeGeneral,
	Fields: []entities.FieldSpec{
		{Name: "tldr", Kind: entities.FieldKindText},
		{Name: "attendees", Kind: entities.FieldKindList},
		{Name: "action_items", Kind: entities.FieldKindItems},
		{Name: "decisions", Kind: entities.FieldKindItems, Properties: []string{"decision", "context"}},
	},
	Guidelines: "- Capture action items with owners and deadlines",
}

func TestMerge(t *testing.T) {
	parts := []map[string]any{
		{
			"tldr":         "",
			"attendees":    []any{"Alice", "Bob"},
			"action_items": []any{map[string]any{"task": "Ship", "owner": "Bob"}},
		},
		{
			"tldr":         "Second part summary",
			"attendees":    []any{"bob", "Carol"},
			"action_items": []any{map[string]any{"owner": "Bob", "task": "Ship"}, map[string]any{"task": "Test"}},
			"extra":        "dropped",
		},
		{
			"tldr": "Third part summary",
		},
	}

	got := Merge(testContract, parts)

	if got["tldr"] != "Second part summary" {
		t.Fatalf("tldr = %v", got["tldr"])
	}
	if want := []any{"Alice", "Bob", "Carol"}; !reflect.DeepEqual(got["attendees"], want) {
		t.Fatalf("attendees = %v, want %v", got["attendees"], want)
	}
	if items := got["action_items"].([]any); len(items) != 2 {
		t.Fatalf("expected 2 action items, got %v", items)
	}
	if _, ok := got["decisions"]; ok {
		t.Fatal("decisions should stay absent")
	}
	if _, ok := got["extra"]; ok {
		t.Fatal("unknown keys must be dropped")
	}
}

func TestMerge_Deterministic(t *testing.T) {
	parts := []map[string]any{
		{"attendees": []any{"Alice"}, "tldr": "one"},
		{"attendees": []any{"Bob"}, "tldr": "two"},
	}
	first := Merge(testContract, parts)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(Merge(testContract, parts), first) {
			t.Fatal("merge is not deterministic")
		}
	}
}
