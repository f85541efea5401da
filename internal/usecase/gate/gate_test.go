package gate_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/gate"
)

type fakeOverrideLog struct {
	mu        sync.Mutex
	entries   []entities.UserOverride
	appendErr error
}

func (f *fakeOverrideLog) Append(_ context.Context, o entities.UserOverride) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, o)
	return nil
}

func (f *fakeOverrideLog) List(_ context.Context) ([]entities.UserOverride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entities.UserOverride(nil), f.entries...), nil
}

func resultWith(t entities.MeetingType, confidence int) entities.ClassificationResult {
	return entities.ClassificationResult{
		ChosenType:        t,
		ConfidencePercent: confidence,
		ResolutionPath: []entities.RuleStep{
			{Rule: 1, Name: "one_on_one_pair"},
			{Rule: 2, Name: "standup_round_robin", Fired: true},
		},
		Fingerprint: "abc123",
	}
}

var _ = Describe("Gate", func() {
	var (
		g         *gate.Gate
		overrides *fakeOverrideLog
		ctx       context.Context
		id        uuid.UUID
	)

	BeforeEach(func() {
		ctx = context.Background()
		overrides = &fakeOverrideLog{}
		g = gate.New(0, overrides, zap.NewNop())
		id = uuid.New()
	})

	Describe("Open", func() {
		Context("when confidence meets the threshold", func() {
			It("should resolve automatically", func() {
				d := g.Open(id, resultWith(entities.MeetingTypeStandup, 70))

				Expect(d.State).To(Equal(entities.GateStateResolved))
				Expect(d.Prompt).To(BeNil())
				Expect(d.Resolution).NotTo(BeNil())
				Expect(d.Resolution.Kind()).To(Equal(entities.ResolutionAuto))
				Expect(d.Resolution.FinalType()).To(Equal(entities.MeetingTypeStandup))
				Expect(d.Resolution.ConfidencePercent()).To(Equal(70))
				Expect(d.Resolution.ClassificationID()).To(Equal(id))
			})
		})

		Context("when confidence is below the threshold", func() {
			It("should wait for input with a prompt", func() {
				d := g.Open(id, resultWith(entities.MeetingTypeClient, 69))

				Expect(d.State).To(Equal(entities.GateStateAwaitingInput))
				Expect(d.Resolution).To(BeNil())
				Expect(d.Prompt).NotTo(BeNil())
				Expect(d.Prompt.TentativeType).To(Equal(entities.MeetingTypeClient))
				Expect(d.Prompt.Alternatives).To(HaveLen(8))
				Expect(d.Prompt.ResolutionPath).To(HaveLen(2))
				Expect(d.Prompt.Message).To(HavePrefix("Based on my analysis, this appears to be a **Client Meeting** meeting (confidence: 69%). Is this correct?"))
			})

			It("should always prompt for a general fallback", func() {
				d := g.Open(id, resultWith(entities.MeetingTypeGeneral, 0))

				Expect(d.State).To(Equal(entities.GateStateAwaitingInput))
			})
		})

		It("should honour a custom threshold", func() {
			strict := gate.New(95, overrides, nil)

			Expect(strict.Open(id, resultWith(entities.MeetingTypeStandup, 90)).State).To(Equal(entities.GateStateAwaitingInput))
			Expect(strict.Threshold()).To(Equal(95))
		})
	})

	Describe("Resume", func() {
		var pending gate.Decision

		BeforeEach(func() {
			pending = g.Open(id, resultWith(entities.MeetingTypeClient, 55))
		})

		It("should confirm when the user accepts", func() {
			d, err := g.Resume(ctx, pending, gate.Response{Accept: true, By: "ana@example.com"})

			Expect(err).NotTo(HaveOccurred())
			Expect(d.State).To(Equal(entities.GateStateResolved))
			Expect(d.Prompt).To(BeNil())
			Expect(d.Resolution.Kind()).To(Equal(entities.ResolutionConfirmed))
			Expect(d.Resolution.FinalType()).To(Equal(entities.MeetingTypeClient))
			Expect(d.Resolution.ResolvedBy()).To(Equal("ana@example.com"))
			Expect(d.Resolution.ResolvedAt()).To(BeTemporally("~", time.Now(), time.Minute))
			Expect(overrides.entries).To(BeEmpty())
		})

		It("should treat picking the tentative type as a confirmation", func() {
			d, err := g.Resume(ctx, pending, gate.Response{Type: entities.MeetingTypeClient})

			Expect(err).NotTo(HaveOccurred())
			Expect(d.Resolution.Kind()).To(Equal(entities.ResolutionConfirmed))
			Expect(overrides.entries).To(BeEmpty())
		})

		It("should record a correction in the override log", func() {
			d, err := g.Resume(ctx, pending, gate.Response{Type: entities.MeetingTypeRetrospective, By: "ben"})

			Expect(err).NotTo(HaveOccurred())
			Expect(d.Resolution.Kind()).To(Equal(entities.ResolutionCorrected))
			Expect(d.Resolution.FinalType()).To(Equal(entities.MeetingTypeRetrospective))
			Expect(overrides.entries).To(HaveLen(1))

			entry := overrides.entries[0]
			Expect(entry.ClassificationID).To(Equal(id))
			Expect(entry.OriginalType).To(Equal(entities.MeetingTypeClient))
			Expect(entry.CorrectedType).To(Equal(entities.MeetingTypeRetrospective))
			Expect(entry.TranscriptFingerprint).To(Equal("abc123"))
			Expect(entry.CorrectedBy).To(Equal("ben"))
		})

		It("should leave the original result untouched", func() {
			d, err := g.Resume(ctx, pending, gate.Response{Type: entities.MeetingTypeArchitecture})

			Expect(err).NotTo(HaveOccurred())
			Expect(d.Result.ChosenType).To(Equal(entities.MeetingTypeClient))
			Expect(d.Result.ConfidencePercent).To(Equal(55))
		})

		It("should reject an unknown meeting type", func() {
			_, err := g.Resume(ctx, pending, gate.Response{Type: "brainstorm"})

			Expect(err).To(MatchError(ucErrors.ErrInvalidMeetingType))
			Expect(overrides.entries).To(BeEmpty())
		})

		It("should reject resuming a resolved decision", func() {
			resolved, err := g.Resume(ctx, pending, gate.Response{Accept: true})
			Expect(err).NotTo(HaveOccurred())

			_, err = g.Resume(ctx, resolved, gate.Response{Accept: true})
			Expect(err).To(MatchError(ucErrors.ErrAlreadyResolved))
		})

		It("should reject resuming a decision that was never opened", func() {
			_, err := g.Resume(ctx, gate.Decision{}, gate.Response{Accept: true})

			Expect(err).To(MatchError(entities.ErrInvalidTransition))
		})

		Context("when the override log fails", func() {
			It("should still resolve and surface a notice", func() {
				overrides.appendErr = errors.New("redis down")

				d, err := g.Resume(ctx, pending, gate.Response{Type: entities.MeetingTypeStandup})

				Expect(err).NotTo(HaveOccurred())
				Expect(d.State).To(Equal(entities.GateStateResolved))
				Expect(d.Resolution.FinalType()).To(Equal(entities.MeetingTypeStandup))
				Expect(d.Notices).To(HaveLen(1))
				Expect(d.Notices[0].Kind).To(Equal(entities.NoticeOverrideLogWriteFailure))
			})
		})
	})

	Describe("Restore", func() {
		It("should rebuild a resolved decision from a record", func() {
			result := resultWith(entities.MeetingTypeClient, 55)
			record := entities.NewClassificationRecord(id, "text", entities.TranscriptMetadata{}, result, entities.SourceText, "")
			at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
			record.MarkResolved(entities.ResolutionCorrected, entities.MeetingTypeOneOnOne, "cleo", at)

			d := g.Restore(record)

			Expect(d.State).To(Equal(entities.GateStateResolved))
			Expect(d.Resolution.FinalType()).To(Equal(entities.MeetingTypeOneOnOne))
			Expect(d.Resolution.Kind()).To(Equal(entities.ResolutionCorrected))
			Expect(d.Resolution.ResolvedAt()).To(Equal(at))
			Expect(d.Result.ChosenType).To(Equal(entities.MeetingTypeClient))
		})

		It("should rebuild the prompt for an awaiting record", func() {
			record := entities.NewClassificationRecord(id, "text", entities.TranscriptMetadata{}, resultWith(entities.MeetingTypeClient, 55), entities.SourceText, "")
			record.MarkAwaitingInput()

			d := g.Restore(record)

			Expect(d.State).To(Equal(entities.GateStateAwaitingInput))
			Expect(d.Prompt).NotTo(BeNil())
			Expect(d.Resolution).To(BeNil())
		})
	})
})
