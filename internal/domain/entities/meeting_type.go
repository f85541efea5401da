package entities

import (
	"fmt"
	"strings"
)

// MeetingType identifies one of the report formats a transcript can be rendered with
type MeetingType string

const (
	MeetingTypeSprintPlanning MeetingType = "sprint_planning"
	MeetingTypeStandup        MeetingType = "standup"
	MeetingTypeRetrospective  MeetingType = "retrospective"
	MeetingTypeOneOnOne       MeetingType = "one_on_one"
	MeetingTypeClient         MeetingType = "client"
	MeetingTypeArchitecture   MeetingType = "architecture"
	MeetingTypePresentation   MeetingType = "presentation"
	MeetingTypeGeneral        MeetingType = "general"
)

var meetingTypeDisplayNames = map[MeetingType]string{
	MeetingTypeSprintPlanning: "Sprint Planning",
	MeetingTypeStandup:        "Daily Standup",
	MeetingTypeRetrospective:  "Retrospective",
	MeetingTypeOneOnOne:       "1-on-1",
	MeetingTypeClient:         "Client Meeting",
	MeetingTypeArchitecture:   "Architecture Review",
	MeetingTypePresentation:   "Presentation",
	MeetingTypeGeneral:        "General Meeting",
}

// Specialized returns the seven scored meeting types in canonical order.
// General is never scored; it is the residual assignment.
func Specialized() []MeetingType {
	return []MeetingType{
		MeetingTypeSprintPlanning,
		MeetingTypeStandup,
		MeetingTypeRetrospective,
		MeetingTypeOneOnOne,
		MeetingTypeClient,
		MeetingTypeArchitecture,
		MeetingTypePresentation,
	}
}

// AllMeetingTypes returns every selectable meeting type, General last.
func AllMeetingTypes() []MeetingType {
	return append(Specialized(), MeetingTypeGeneral)
}

// DisplayName returns the human readable name
func (t MeetingType) DisplayName() string {
	if name, ok := meetingTypeDisplayNames[t]; ok {
		return name
	}
	return string(t)
}

// IsValid reports whether t is one of the known meeting types
func (t MeetingType) IsValid() bool {
	_, ok := meetingTypeDisplayNames[t]
	return ok
}

// IsSpecialized reports whether t is scored by the classifier
func (t MeetingType) IsSpecialized() bool {
	return t.IsValid() && t != MeetingTypeGeneral
}

func (t MeetingType) String() string {
	return string(t)
}

// ParseMeetingType accepts either the canonical value ("one_on_one") or the
// display name ("1-on-1"), case-insensitively.
func ParseMeetingType(s string) (MeetingType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownMeetingType)
	}
	normalized := strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for t, name := range meetingTypeDisplayNames {
		if string(t) == normalized || strings.ToLower(name) == key {
			return t, nil
		}
	}
	switch normalized {
	case "1_on_1", "1:1", "one_on_one_meeting":
		return MeetingTypeOneOnOne, nil
	case "stand_up", "daily_standup":
		return MeetingTypeStandup, nil
	case "retro":
		return MeetingTypeRetrospective, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMeetingType, s)
}
