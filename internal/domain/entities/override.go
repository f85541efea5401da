package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserOverride records a user's correction of a tentative meeting type.
// Entries are only ever appended; they bias future scoring and never alter a
// recorded classification.
type UserOverride struct {
	ID                    uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	ClassificationID      uuid.UUID   `json:"classification_id" gorm:"type:uuid;not null;index"`
	OriginalType          MeetingType `json:"original_type" gorm:"type:varchar(50);not null"`
	CorrectedType         MeetingType `json:"corrected_type" gorm:"type:varchar(50);not null"`
	TranscriptFingerprint string      `json:"transcript_fingerprint" gorm:"type:varchar(64);not null;index"`
	CorrectedBy           string      `json:"corrected_by,omitempty" gorm:"type:varchar(255)"`
	CreatedAt             time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName pins the table used by the postgres override log
func (UserOverride) TableName() string {
	return "user_overrides"
}

// NewUserOverride creates an override record for a correction
func NewUserOverride(classificationID uuid.UUID, original, corrected MeetingType, fingerprint, by string) UserOverride {
	return UserOverride{
		ID:                    uuid.New(),
		ClassificationID:      classificationID,
		OriginalType:          original,
		CorrectedType:         corrected,
		TranscriptFingerprint: fingerprint,
		CorrectedBy:           by,
		CreatedAt:             time.Now().UTC(),
	}
}

// AdjustmentPolicy bounds how far corrections may move a keyword weight
type AdjustmentPolicy struct {
	Step float64
	Min  float64
	Max  float64
}

// Adjustments is a snapshot of learned keyword weight multipliers per type.
// The zero value applies no adjustment.
type Adjustments struct {
	Multipliers map[MeetingType]float64 `json:"multipliers"`
	Overrides   int                     `json:"overrides"`
}

// Multiplier returns the keyword weight multiplier for a type (1 when unadjusted)
func (a Adjustments) Multiplier(t MeetingType) float64 {
	if m, ok := a.Multipliers[t]; ok {
		return m
	}
	return 1
}

// BuildAdjustments folds an override log into a multiplier snapshot. Each
// correction nudges the corrected type up and the original type down; General
// carries no keyword weight and is skipped.
func BuildAdjustments(overrides []UserOverride, policy AdjustmentPolicy) Adjustments {
	net := make(map[MeetingType]int)
	for _, o := range overrides {
		if o.OriginalType == o.CorrectedType {
			continue
		}
		if o.CorrectedType.IsSpecialized() {
			net[o.CorrectedType]++
		}
		if o.OriginalType.IsSpecialized() {
			net[o.OriginalType]--
		}
	}

	adj := Adjustments{
		Multipliers: make(map[MeetingType]float64, len(net)),
		Overrides:   len(overrides),
	}
	for t, n := range net {
		if n == 0 {
			continue
		}
		m := 1 + float64(n)*policy.Step
		if m < policy.Min {
			m = policy.Min
		}
		if m > policy.Max {
			m = policy.Max
		}
		adj.Multipliers[t] = m
	}
	return adj
}
