package gate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
)

// DefaultThreshold is the confidence at or above which a result is accepted without asking
const DefaultThreshold = 70

// Decision is the gate's view of one classification
type Decision struct {
	ClassificationID uuid.UUID                     `json:"classification_id"`
	State            entities.GateState            `json:"state"`
	Result           entities.ClassificationResult `json:"result"`
	Prompt           *Prompt                       `json:"prompt,omitempty"`
	Resolution       *Resolution                   `json:"resolution,omitempty"`
	Notices          []entities.Notice             `json:"notices,omitempty"`
}

// Response is the user's answer to a prompt
type Response struct {
	Accept bool
	Type   entities.MeetingType
	By     string
}

// Gate holds low-confidence classifications until the user confirms or
// corrects them. Corrections are appended to the override log.
type Gate struct {
	threshold int
	overrides repositories.OverrideLog
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a gate. A threshold <= 0 uses DefaultThreshold.
func New(threshold int, overrides repositories.OverrideLog, logger *zap.Logger) *Gate {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Gate{
		threshold: threshold,
		overrides: overrides,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Threshold returns the auto-accept confidence
func (g *Gate) Threshold() int {
	return g.threshold
}

// Open is the first phase. Confident results resolve immediately; the rest
// wait for Resume with a prompt.
func (g *Gate) Open(id uuid.UUID, result entities.ClassificationResult) Decision {
	d := Decision{ClassificationID: id, Result: result}

	if result.ConfidencePercent >= g.threshold {
		res := g.resolve(id, result, entities.ResolutionAuto, result.ChosenType, result.ConfidencePercent, "")
		d.State = entities.GateStateResolved
		d.Resolution = &res
		return d
	}

	d.State = entities.GateStateAwaitingInput
	d.Prompt = newPrompt(result)
	return d
}

// Resume is the second phase. Accepting, or picking the tentative type again,
// confirms it; any other type is a correction and is recorded in the override log.
func (g *Gate) Resume(ctx context.Context, d Decision, resp Response) (Decision, error) {
	switch d.State {
	case entities.GateStateResolved:
		return d, ucErrors.ErrAlreadyResolved
	case entities.GateStateAwaitingInput:
	default:
		return d, fmt.Errorf("%w: cannot resume from %q", entities.ErrInvalidTransition, d.State)
	}

	tentative := d.Result.ChosenType
	kind := entities.ResolutionConfirmed
	final := tentative

	if !resp.Accept {
		if !resp.Type.IsValid() {
			return d, fmt.Errorf("%w: %q", ucErrors.ErrInvalidMeetingType, resp.Type)
		}
		if resp.Type != tentative {
			kind = entities.ResolutionCorrected
			final = resp.Type
		}
	}

	if kind == entities.ResolutionCorrected && g.overrides != nil {
		override := entities.NewUserOverride(d.ClassificationID, tentative, final, d.Result.Fingerprint, resp.By)
		if err := g.overrides.Append(ctx, override); err != nil {
			if g.logger != nil {
				g.logger.Warn("failed to append override",
					zap.String("classification_id", d.ClassificationID.String()),
					zap.String("original_type", tentative.String()),
					zap.String("corrected_type", final.String()),
					zap.Error(err))
			}
			d.Notices = append(d.Notices, entities.Notice{
				Kind:    entities.NoticeOverrideLogWriteFailure,
				Message: fmt.Sprintf("correction to %s was applied but could not be recorded: %v", final.DisplayName(), err),
			})
		}
	}

	res := g.resolve(d.ClassificationID, d.Result, kind, final, 100, resp.By)
	d.State = entities.GateStateResolved
	d.Prompt = nil
	d.Resolution = &res

	if g.logger != nil {
		g.logger.Info("classification resolved by user",
			zap.String("classification_id", d.ClassificationID.String()),
			zap.String("kind", string(kind)),
			zap.String("final_type", final.String()))
	}
	return d, nil
}

// Restore rebuilds the decision for a persisted record
func (g *Gate) Restore(record *entities.ClassificationRecord) Decision {
	result := record.ClassificationResult()
	d := Decision{
		ClassificationID: record.ID,
		State:            record.State,
		Result:           result,
		Notices:          record.Notices.Data(),
	}

	switch {
	case record.IsResolved():
		confidence := 100
		if record.Resolution == entities.ResolutionAuto {
			confidence = result.ConfidencePercent
		}
		at := record.UpdatedAt
		if record.ResolvedAt != nil {
			at = *record.ResolvedAt
		}
		res := g.resolve(record.ID, result, record.Resolution, record.FinalType, confidence, record.ResolvedBy)
		res.resolvedAt = at
		d.State = entities.GateStateResolved
		d.Resolution = &res
	case record.State == entities.GateStateAwaitingInput:
		d.Prompt = newPrompt(result)
	}
	return d
}

func (g *Gate) resolve(id uuid.UUID, result entities.ClassificationResult, kind entities.ResolutionKind, final entities.MeetingType, confidence int, by string) Resolution {
	return Resolution{
		classificationID: id,
		finalType:        final,
		kind:             kind,
		confidence:       confidence,
		path:             result.ResolutionPath,
		signals:          result.Signals,
		resolvedBy:       by,
		resolvedAt:       g.now(),
	}
}
