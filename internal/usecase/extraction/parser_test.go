package extraction

import (
	"errors"
	"testing"

	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		tldr string
	}{
		{"plain", `{"tldr":"plain"}`, "plain"},
		{"json fence", "```json\n{\"tldr\":\"fenced\"}\n```", "fenced"},
		{"bare fence", "```\n{\"tldr\":\"bare\"}\n```", "bare"},
		{"prose around", "Here is the summary:\n{\"tldr\":\"prose\"}\nLet me know!", "prose"},
	}
	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got["tldr"] != tt.tldr {
				t.Fatalf("tldr = %v, want %s", got["tldr"], tt.tldr)
			}
		})
	}
}

func TestParser_Malformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "no json here", `{"tldr": "cut off`, `["a","b"]`, "null"} {
		if _, err := NewParser().Parse(raw); !errors.Is(err, ucErrors.ErrMalformedExtract) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformedExtract", raw, err)
		}
	}
}
