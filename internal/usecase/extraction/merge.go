package extraction

import (
	"encoding/json"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Merge folds per-chunk extracts into one record. Text and object fields keep
// the first non-empty value in chunk order; list and items fields are
// concatenated with duplicates removed. A single extract is returned as is;
// Apply drops whatever the contract does not name.
func Merge(contract entities.TemplateContract, parts []map[string]any) map[string]any {
	if len(parts) == 1 {
		return parts[0]
	}

	out := make(map[string]any, len(contract.Fields))
	for _, f := range contract.Fields {
		switch f.Kind {
		case entities.FieldKindList, entities.FieldKindItems:
			var merged []any
			seen := make(map[string]struct{})
			for _, part := range parts {
				for _, v := range asSlice(part[f.Name]) {
					key := dedupKey(v)
					if key == "" {
						continue
					}
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
					merged = append(merged, v)
				}
			}
			if len(merged) > 0 {
				out[f.Name] = merged
			}
		default:
			for _, part := range parts {
				if v, ok := part[f.Name]; ok && !isEmpty(v) {
					out[f.Name] = v
					break
				}
			}
		}
	}
	return out
}

func asSlice(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case nil:
		return nil
	default:
		return []any{t}
	}
}

// dedupKey normalizes a value for duplicate detection. Maps marshal with
// sorted keys, so equal objects share a key.
func dedupKey(v any) string {
	if s, ok := v.(string); ok {
		return strings.ToLower(strings.Join(strings.Fields(s), " "))
	}
	if isEmpty(v) {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
