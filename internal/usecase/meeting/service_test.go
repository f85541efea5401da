package meeting

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/external/livekit"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/classifier"
	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/gate"
	"github.com/johnquangdev/meeting-summarizer/pkg/ai"
)

const oneOnOneText = `Manager: How is your career going? I wanted to share feedback on your goals.
Report: Thanks. My career plans and goals need feedback.
Manager: Let us set goals, talk career, and more feedback.`

var externalOnlyText = strings.Repeat("lorem ipsum dolor sit amet ", 30)

type fakeExtractor struct {
	mu      sync.Mutex
	errs    []error
	content map[string]any
	calls   int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, _ entities.TemplateContract) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return f.content, nil
}

type fakeArchive struct {
	reports map[uuid.UUID][]byte
}

func (f *fakeArchive) SaveReport(_ context.Context, id uuid.UUID, report []byte) (string, error) {
	if f.reports == nil {
		f.reports = make(map[uuid.UUID][]byte)
	}
	f.reports[id] = report
	return "reports/" + id.String() + ".json", nil
}

type fakeRoster struct {
	roster *livekit.Roster
	err    error
}

func (f fakeRoster) Roster(_ context.Context, _ string) (*livekit.Roster, error) {
	return f.roster, f.err
}

type fakeFetcher struct {
	transcript *ai.FetchedTranscript
	err        error
}

func (f fakeFetcher) Fetch(_ context.Context, _ string) (*ai.FetchedTranscript, error) {
	return f.transcript, f.err
}

type failingOverrideLog struct{}

func (failingOverrideLog) Append(context.Context, entities.UserOverride) error {
	return errors.New("redis: connection refused")
}

func (failingOverrideLog) List(context.Context) ([]entities.UserOverride, error) {
	return nil, nil
}

type testEnv struct {
	svc       *service
	records   repositories.ClassificationRepository
	overrides repositories.OverrideLog
	extractor *fakeExtractor
	archive   *fakeArchive
}

func newTestEnv(t *testing.T, mutate func(*Dependencies)) *testEnv {
	t.Helper()
	env := &testEnv{
		records:   repository.NewMemoryClassificationRepository(),
		overrides: cache.NewMemoryOverrideLog(),
		extractor: &fakeExtractor{content: map[string]any{
			"tldr":      "Career check-in",
			"attendees": []any{"Manager", "Report"},
			"action_items": []any{
				map[string]any{"task": "Draft goals", "owner": "Report", "deadline": "", "priority": "medium"},
			},
		}},
		archive: &fakeArchive{},
	}
	deps := Dependencies{
		Classifier: classifier.New(nil, classifier.DefaultParams()),
		Records:    env.records,
		Overrides:  env.overrides,
		Extractor:  env.extractor,
		Archive:    env.archive,
	}
	if mutate != nil {
		mutate(&deps)
	}
	deps.Gate = gate.New(gate.DefaultThreshold, deps.Overrides, nil)

	svc := NewService(deps, Options{
		MaxRetries: 1,
		Policy:     entities.AdjustmentPolicy{Step: 0.05, Min: 0.75, Max: 1.25},
	}, nil).(*service)
	svc.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	env.svc = svc
	return env
}

func (e *testEnv) classifyAwaiting(t *testing.T) *Classification {
	t.Helper()
	cls, err := e.svc.Classify(context.Background(), ClassifyInput{
		Text:     externalOnlyText,
		Metadata: map[string]any{"external_participant": true},
	})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Decision.State != entities.GateStateAwaitingInput {
		t.Fatalf("expected awaiting_input, got %s", cls.Decision.State)
	}
	return cls
}

func TestClassify_ConfidentResultResolvesAutomatically(t *testing.T) {
	env := newTestEnv(t, nil)

	cls, err := env.svc.Classify(context.Background(), ClassifyInput{
		Text:     oneOnOneText,
		Metadata: map[string]any{"participant_count": 2},
	})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Decision.State != entities.GateStateResolved || cls.Decision.Resolution == nil {
		t.Fatalf("expected resolved decision, got %+v", cls.Decision)
	}
	if got := cls.Decision.Resolution.Kind(); got != entities.ResolutionAuto {
		t.Fatalf("expected auto resolution, got %s", got)
	}
	if cls.Source != entities.SourceText || cls.ExtractionStatus != entities.ExtractionNotStarted {
		t.Fatalf("unexpected record view %+v", cls)
	}

	stored, err := env.svc.Get(context.Background(), cls.Decision.ClassificationID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Decision.Resolution.FinalType() != entities.MeetingTypeOneOnOne {
		t.Fatalf("expected one_on_one, got %s", stored.Decision.Resolution.FinalType())
	}
}

func TestClassify_Validation(t *testing.T) {
	env := newTestEnv(t, nil)

	if _, err := env.svc.Classify(context.Background(), ClassifyInput{Text: ""}); !errors.Is(err, ucErrors.ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript, got %v", err)
	}

	blank, err := env.svc.Classify(context.Background(), ClassifyInput{Text: "  \n"})
	if err != nil {
		t.Fatalf("whitespace-only transcript: %v", err)
	}
	if blank.Decision.Result.ChosenType != entities.MeetingTypeGeneral || !blank.Decision.Result.InsufficientContent {
		t.Fatalf("expected insufficient general result, got %+v", blank.Decision.Result)
	}
	long := strings.Repeat("a", MaxTranscriptChars+1)
	if _, err := env.svc.Classify(context.Background(), ClassifyInput{Text: long}); !errors.Is(err, ucErrors.ErrTranscriptTooLong) {
		t.Fatalf("expected ErrTranscriptTooLong, got %v", err)
	}
}

func TestClassify_MalformedMetadataIsANotice(t *testing.T) {
	env := newTestEnv(t, nil)

	cls, err := env.svc.Classify(context.Background(), ClassifyInput{
		Text:     oneOnOneText,
		Metadata: map[string]any{"participant_count": "lots"},
	})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !hasNotice(cls.Decision.Result.Notices, entities.NoticeMalformedMetadata) {
		t.Fatalf("expected malformed_metadata notice, got %+v", cls.Decision.Result.Notices)
	}
}

func TestClassify_WebVTT(t *testing.T) {
	env := newTestEnv(t, nil)
	doc := "WEBVTT\n\n1\n00:00:01.000 --> 00:00:04.000\n<v Alice>Hello everyone.</v>\n\n2\n00:00:04.000 --> 01:30:00.000\n<v Bob>Thanks Alice.</v>\n"

	cls, err := env.svc.Classify(context.Background(), ClassifyInput{Text: doc})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Metadata.DurationMinutes != 90 {
		t.Fatalf("expected the last cue end as duration, got %d", cls.Metadata.DurationMinutes)
	}
	if cls.Decision.Result.Signals.SpeakerCount != 2 {
		t.Fatalf("expected voice tags as speakers, got %d", cls.Decision.Result.Signals.SpeakerCount)
	}
}

func TestClassify_RosterEnrichment(t *testing.T) {
	roster := &livekit.Roster{Room: "acme-sync", Participants: []livekit.ParticipantInfo{
		{Identity: "alice@acme.io"},
		{Identity: "bob@acme.io"},
		{Identity: "carol@client.com", External: true},
	}}
	env := newTestEnv(t, func(d *Dependencies) { d.Roster = fakeRoster{roster: roster} })

	cls, err := env.svc.Classify(context.Background(), ClassifyInput{Text: externalOnlyText, Room: "acme-sync"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !cls.Metadata.ExternalParticipant || cls.Metadata.ParticipantCount != 3 {
		t.Fatalf("roster not applied: %+v", cls.Metadata)
	}
	if cls.Decision.Result.ChosenType != entities.MeetingTypeClient {
		t.Fatalf("expected client, got %s", cls.Decision.Result.ChosenType)
	}
}

func TestClassify_RosterFailureIsANotice(t *testing.T) {
	env := newTestEnv(t, func(d *Dependencies) { d.Roster = fakeRoster{err: errors.New("twirp: unavailable")} })

	cls, err := env.svc.Classify(context.Background(), ClassifyInput{Text: oneOnOneText, Room: "r"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !hasNotice(cls.Decision.Result.Notices, entities.NoticeEnrichmentFailed) {
		t.Fatalf("expected enrichment_failed notice, got %+v", cls.Decision.Result.Notices)
	}
}

func TestClassifyAssemblyAI(t *testing.T) {
	fetcher := fakeFetcher{transcript: &ai.FetchedTranscript{ID: "tr-1", Text: oneOnOneText, DurationMinutes: 30}}
	env := newTestEnv(t, func(d *Dependencies) { d.Transcripts = fetcher })

	cls, err := env.svc.ClassifyAssemblyAI(context.Background(), "tr-1", ClassifyInput{Metadata: map[string]any{"participant_count": 2}})
	if err != nil {
		t.Fatalf("ClassifyAssemblyAI: %v", err)
	}
	if cls.Source != entities.SourceAssemblyAI || cls.SourceRef != "tr-1" {
		t.Fatalf("unexpected source %s/%s", cls.Source, cls.SourceRef)
	}
	if cls.Metadata.DurationMinutes != 30 {
		t.Fatalf("expected audio duration to fill the metadata, got %d", cls.Metadata.DurationMinutes)
	}

	declared, err := env.svc.ClassifyAssemblyAI(context.Background(), "tr-1", ClassifyInput{Metadata: map[string]any{"duration_minutes": 45}})
	if err != nil {
		t.Fatalf("ClassifyAssemblyAI: %v", err)
	}
	if declared.Metadata.DurationMinutes != 45 {
		t.Fatalf("declared duration must win, got %d", declared.Metadata.DurationMinutes)
	}

	bare := newTestEnv(t, nil)
	if _, err := bare.svc.ClassifyAssemblyAI(context.Background(), "tr-1", ClassifyInput{}); !errors.Is(err, ucErrors.ErrTranscriptSource) {
		t.Fatalf("expected ErrTranscriptSource, got %v", err)
	}
}

func TestRespond_Confirm(t *testing.T) {
	env := newTestEnv(t, nil)
	cls := env.classifyAwaiting(t)
	id := cls.Decision.ClassificationID

	if cls.Decision.Prompt == nil || len(cls.Decision.Prompt.Alternatives) != 8 {
		t.Fatalf("expected a prompt with all types, got %+v", cls.Decision.Prompt)
	}

	got, err := env.svc.Respond(context.Background(), id, gate.Response{Accept: true, By: "pm@acme.io"})
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	res := got.Decision.Resolution
	if res.Kind() != entities.ResolutionConfirmed || res.FinalType() != entities.MeetingTypeClient || res.ResolvedBy() != "pm@acme.io" {
		t.Fatalf("unexpected resolution %+v", res)
	}

	if _, err := env.svc.Respond(context.Background(), id, gate.Response{Accept: true}); !errors.Is(err, ucErrors.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
	overrides, _ := env.overrides.List(context.Background())
	if len(overrides) != 0 {
		t.Fatalf("confirmation must not log an override, got %d", len(overrides))
	}
}

func TestRespond_CorrectionFeedsAdjustmentsOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	cls := env.classifyAwaiting(t)
	id := cls.Decision.ClassificationID
	original := cls.Decision.Result

	got, err := env.svc.Respond(context.Background(), id, gate.Response{Type: entities.MeetingTypeRetrospective, By: "pm"})
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if got.Decision.Resolution.Kind() != entities.ResolutionCorrected || got.Decision.Resolution.FinalType() != entities.MeetingTypeRetrospective {
		t.Fatalf("unexpected resolution %+v", got.Decision.Resolution)
	}

	adj, err := env.svc.Adjustments(context.Background())
	if err != nil {
		t.Fatalf("Adjustments: %v", err)
	}
	if adj.Overrides != 1 || adj.Multiplier(entities.MeetingTypeRetrospective) != 1.05 || adj.Multiplier(entities.MeetingTypeClient) != 0.95 {
		t.Fatalf("unexpected adjustments %+v", adj)
	}

	stored, err := env.svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Decision.Result.ChosenType != original.ChosenType || stored.Decision.Result.ConfidencePercent != original.ConfidencePercent {
		t.Fatalf("recorded result changed: %+v", stored.Decision.Result)
	}
}

func TestRespond_InvalidType(t *testing.T) {
	env := newTestEnv(t, nil)
	cls := env.classifyAwaiting(t)

	_, err := env.svc.Respond(context.Background(), cls.Decision.ClassificationID, gate.Response{Type: "brainstorm"})
	if !errors.Is(err, ucErrors.ErrInvalidMeetingType) {
		t.Fatalf("expected ErrInvalidMeetingType, got %v", err)
	}
}

func TestRespond_OverrideLogFailureIsANotice(t *testing.T) {
	env := newTestEnv(t, func(d *Dependencies) { d.Overrides = failingOverrideLog{} })
	cls := env.classifyAwaiting(t)
	id := cls.Decision.ClassificationID

	got, err := env.svc.Respond(context.Background(), id, gate.Response{Type: entities.MeetingTypeArchitecture})
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !hasNotice(got.Decision.Notices, entities.NoticeOverrideLogWriteFailure) {
		t.Fatalf("expected override_log_write_failure notice, got %+v", got.Decision.Notices)
	}

	stored, _ := env.svc.Get(context.Background(), id)
	if !hasNotice(stored.Decision.Notices, entities.NoticeOverrideLogWriteFailure) {
		t.Fatal("notice was not persisted")
	}
}

func TestRespond_NotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	if _, err := env.svc.Respond(context.Background(), uuid.New(), gate.Response{Accept: true}); !errors.Is(err, ucErrors.ErrClassificationNotFound) {
		t.Fatalf("expected ErrClassificationNotFound, got %v", err)
	}
}

func TestExtract_RequiresResolution(t *testing.T) {
	env := newTestEnv(t, nil)
	cls := env.classifyAwaiting(t)

	_, err := env.svc.Extract(context.Background(), cls.Decision.ClassificationID)
	if !errors.Is(err, ucErrors.ErrNotResolved) {
		t.Fatalf("expected ErrNotResolved, got %v", err)
	}
	if env.extractor.calls != 0 {
		t.Fatal("extractor must not run before resolution")
	}
}

func TestExtract_RendersResolvedTemplate(t *testing.T) {
	env := newTestEnv(t, nil)
	cls, err := env.svc.Classify(context.Background(), ClassifyInput{Text: oneOnOneText, Metadata: map[string]any{"participant_count": 2}})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	id := cls.Decision.ClassificationID

	out, err := env.svc.Extract(context.Background(), id)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if out.Report.FinalType != entities.MeetingTypeOneOnOne || out.Report.TemplateID != "one_on_one_report" {
		t.Fatalf("unexpected report %+v", out.Report)
	}
	if out.Report.Fields["tldr"] != "Career check-in" {
		t.Fatalf("tldr = %v", out.Report.Fields["tldr"])
	}
	if out.Report.Fields["concerns_raised"] != entities.NotCaptured {
		t.Fatalf("missing fields must be marked, got %v", out.Report.Fields["concerns_raised"])
	}
	if len(out.Report.Missing) != 7 {
		t.Fatalf("expected 7 missing fields, got %v", out.Report.Missing)
	}
	if out.Attempts != 1 || out.ReportKey != "reports/"+id.String()+".json" {
		t.Fatalf("unexpected output %d %s", out.Attempts, out.ReportKey)
	}

	var archived entities.RenderInput
	if err := json.Unmarshal(env.archive.reports[id], &archived); err != nil {
		t.Fatalf("archived report: %v", err)
	}
	if archived.TemplateID != "one_on_one_report" {
		t.Fatalf("unexpected archived report %+v", archived)
	}
	if out.Classification.ExtractionStatus != entities.ExtractionCompleted {
		t.Fatalf("expected completed status, got %s", out.Classification.ExtractionStatus)
	}
}

func TestExtract_RetriesTransientFailureOnce(t *testing.T) {
	env := newTestEnv(t, nil)
	env.extractor.errs = []error{errors.New("groq returned status 503")}
	cls, _ := env.svc.Classify(context.Background(), ClassifyInput{Text: oneOnOneText, Metadata: map[string]any{"participant_count": 2}})

	out, err := env.svc.Extract(context.Background(), cls.Decision.ClassificationID)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if out.Attempts != 2 || env.extractor.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d (calls %d)", out.Attempts, env.extractor.calls)
	}
}

func TestExtract_GivesUpAfterOneRetry(t *testing.T) {
	env := newTestEnv(t, nil)
	env.extractor.errs = []error{
		errors.New("groq returned status 503"),
		errors.New("groq returned status 503"),
		errors.New("groq returned status 503"),
	}
	cls, _ := env.svc.Classify(context.Background(), ClassifyInput{Text: oneOnOneText, Metadata: map[string]any{"participant_count": 2}})
	id := cls.Decision.ClassificationID

	_, err := env.svc.Extract(context.Background(), id)
	var extErr *ucErrors.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extErr.Attempts != 2 || !extErr.Retryable {
		t.Fatalf("unexpected extraction error %+v", extErr)
	}
	if env.extractor.calls != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", env.extractor.calls)
	}
}

func TestExtract_PermanentFailureKeepsResolution(t *testing.T) {
	env := newTestEnv(t, nil)
	env.extractor.errs = []error{errors.New("invalid api key")}
	cls, _ := env.svc.Classify(context.Background(), ClassifyInput{Text: oneOnOneText, Metadata: map[string]any{"participant_count": 2}})
	id := cls.Decision.ClassificationID

	_, err := env.svc.Extract(context.Background(), id)
	var extErr *ucErrors.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extErr.Attempts != 1 || extErr.Retryable {
		t.Fatalf("permanent errors must not be retried: %+v", extErr)
	}

	failed, _ := env.svc.Get(context.Background(), id)
	if failed.ExtractionStatus != entities.ExtractionFailed || failed.LastError == nil {
		t.Fatalf("expected failed status, got %+v", failed)
	}
	if failed.Decision.Resolution.FinalType() != entities.MeetingTypeOneOnOne {
		t.Fatal("resolved type lost after failure")
	}

	out, err := env.svc.Extract(context.Background(), id)
	if err != nil {
		t.Fatalf("retrying the extraction: %v", err)
	}
	if out.Report.FinalType != entities.MeetingTypeOneOnOne || out.Classification.ExtractionAttempts != 2 {
		t.Fatalf("unexpected retry outcome %+v", out.Classification)
	}
	if out.Classification.Decision.Result.Fingerprint != cls.Decision.Result.Fingerprint {
		t.Fatal("retry must reuse the recorded classification")
	}
}

func TestExtract_WithoutExtractor(t *testing.T) {
	env := newTestEnv(t, func(d *Dependencies) { d.Extractor = nil })
	cls, _ := env.svc.Classify(context.Background(), ClassifyInput{Text: oneOnOneText, Metadata: map[string]any{"participant_count": 2}})

	if _, err := env.svc.Extract(context.Background(), cls.Decision.ClassificationID); !errors.Is(err, ucErrors.ErrExtractorMissing) {
		t.Fatalf("expected ErrExtractorMissing, got %v", err)
	}
}

func TestMeetingTypes(t *testing.T) {
	types := newTestEnv(t, nil).svc.MeetingTypes()
	if len(types) != 8 {
		t.Fatalf("expected 8 meeting types, got %d", len(types))
	}
	for _, mt := range types {
		if mt.TemplateID == "" || len(mt.Fields) == 0 || mt.DisplayName == "" {
			t.Fatalf("incomplete meeting type %+v", mt)
		}
	}
	if types[len(types)-1].Type != entities.MeetingTypeGeneral {
		t.Fatalf("general must be listed last, got %s", types[len(types)-1].Type)
	}
}

func hasNotice(notices []entities.Notice, kind entities.NoticeKind) bool {
	for _, n := range notices {
		if n.Kind == kind {
			return true
		}
	}
	return false
}
