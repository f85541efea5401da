package meeting

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/external/livekit"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/classifier"
	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/extraction"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/gate"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/template"
	"github.com/johnquangdev/meeting-summarizer/pkg/ai"
	"github.com/johnquangdev/meeting-summarizer/pkg/transcript"
)

// MaxTranscriptChars is the longest transcript accepted for classification
const MaxTranscriptChars = 500000

const rosterTimeout = 5 * time.Second

// TranscriptFetcher loads a finished transcript from a transcription service
type TranscriptFetcher interface {
	Fetch(ctx context.Context, transcriptID string) (*ai.FetchedTranscript, error)
}

// RosterProvider looks up who attended a meeting room
type RosterProvider interface {
	Roster(ctx context.Context, roomName string) (*livekit.Roster, error)
}

// ReportArchive keeps a copy of every rendered report
type ReportArchive interface {
	SaveReport(ctx context.Context, classificationID uuid.UUID, report []byte) (string, error)
}

// Service classifies transcripts, drives the confirmation gate and runs
// content extraction for resolved classifications.
type Service interface {
	Classify(ctx context.Context, in ClassifyInput) (*Classification, error)
	ClassifyAssemblyAI(ctx context.Context, transcriptID string, in ClassifyInput) (*Classification, error)
	Get(ctx context.Context, id uuid.UUID) (*Classification, error)
	Respond(ctx context.Context, id uuid.UUID, resp gate.Response) (*Classification, error)
	Extract(ctx context.Context, id uuid.UUID) (*ExtractionOutput, error)
	MeetingTypes() []MeetingTypeInfo
	Adjustments(ctx context.Context) (entities.Adjustments, error)
}

// Dependencies are the collaborators of the meeting service. Extractor,
// Transcripts, Roster and Archive are optional.
type Dependencies struct {
	Classifier  *classifier.Classifier
	Gate        *gate.Gate
	Selector    *template.Selector
	Records     repositories.ClassificationRepository
	Overrides   repositories.OverrideLog
	Extractor   extraction.ContentExtractor
	Transcripts TranscriptFetcher
	Roster      RosterProvider
	Archive     ReportArchive
}

// Options tune extraction and learning
type Options struct {
	ExtractionTimeout time.Duration
	MaxRetries        int
	Policy            entities.AdjustmentPolicy
}

type service struct {
	classifier  *classifier.Classifier
	gate        *gate.Gate
	selector    *template.Selector
	records     repositories.ClassificationRepository
	overrides   repositories.OverrideLog
	extractor   extraction.ContentExtractor
	transcripts TranscriptFetcher
	roster      RosterProvider
	archive     ReportArchive
	opts        Options
	logger      *zap.Logger

	newBackOff func() backoff.BackOff
	locks      sync.Map // uuid.UUID -> *sync.Mutex
}

// NewService constructs the meeting service
func NewService(deps Dependencies, opts Options, logger *zap.Logger) Service {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	selector := deps.Selector
	if selector == nil {
		selector = template.NewSelector(nil)
	}
	return &service{
		classifier:  deps.Classifier,
		gate:        deps.Gate,
		selector:    selector,
		records:     deps.Records,
		overrides:   deps.Overrides,
		extractor:   deps.Extractor,
		transcripts: deps.Transcripts,
		roster:      deps.Roster,
		archive:     deps.Archive,
		opts:        opts,
		logger:      logger,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 500 * time.Millisecond
			bo.MaxInterval = 5 * time.Second
			bo.MaxElapsedTime = 0
			return bo
		},
	}
}

// ClassifyInput is one transcript to classify
type ClassifyInput struct {
	Text      string
	Metadata  map[string]any
	Room      string
	Source    entities.TranscriptSource
	SourceRef string
}

// Classification is the caller-facing view of a classification record
type Classification struct {
	Decision           gate.Decision
	Source             entities.TranscriptSource
	SourceRef          string
	Metadata           entities.TranscriptMetadata
	ExtractionStatus   entities.ExtractionStatus
	ExtractionAttempts int
	LastError          *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// MeetingTypeInfo describes one selectable meeting type and its template
type MeetingTypeInfo struct {
	Type        entities.MeetingType
	DisplayName string
	TemplateID  string
	Fields      []string
}

// Classify validates and classifies a transcript, persists the result and
// opens the confirmation gate. WebVTT input is flattened to speaker lines and
// its last cue end counts as the declared duration.
func (s *service) Classify(ctx context.Context, in ClassifyInput) (*Classification, error) {
	return s.classify(ctx, in, nil)
}

// ClassifyAssemblyAI classifies a completed AssemblyAI transcript. The audio
// duration fills in the meeting duration when the caller did not declare one.
func (s *service) ClassifyAssemblyAI(ctx context.Context, transcriptID string, in ClassifyInput) (*Classification, error) {
	if s.transcripts == nil {
		return nil, ucErrors.ErrTranscriptSource
	}
	fetched, err := s.transcripts.Fetch(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ucErrors.ErrTranscriptFetch, transcriptID, err)
	}

	in.Text = fetched.Text
	in.Source = entities.SourceAssemblyAI
	in.SourceRef = fetched.ID
	return s.classify(ctx, in, fetched)
}

func (s *service) classify(ctx context.Context, in ClassifyInput, fetched *ai.FetchedTranscript) (*Classification, error) {
	if in.Text == "" {
		return nil, ucErrors.ErrEmptyTranscript
	}
	if len(in.Text) > MaxTranscriptChars {
		return nil, fmt.Errorf("%w: %d characters (maximum %d)", ucErrors.ErrTranscriptTooLong, len(in.Text), MaxTranscriptChars)
	}
	if in.Source == "" {
		in.Source = entities.SourceText
	}

	meta, notices := entities.ParseMetadata(in.Metadata)
	if transcript.IsVTT(in.Text) {
		text, seconds := transcript.ParseVTT(in.Text)
		in.Text = text
		if !meta.HasDeclaredDuration() && seconds > 0 {
			meta.DurationMinutes = int(math.Round(seconds / 60))
		}
	}
	if fetched != nil && !meta.HasDeclaredDuration() && fetched.DurationMinutes > 0 {
		meta.DurationMinutes = fetched.DurationMinutes
	}
	if in.Room != "" {
		notices = append(notices, s.enrichFromRoster(ctx, in.Room, &meta)...)
	}

	result := s.classifier.Classify(in.Text, meta, s.snapshot(ctx))
	if len(notices) > 0 {
		result.Notices = append(notices, result.Notices...)
	}

	id := uuid.New()
	record := entities.NewClassificationRecord(id, in.Text, meta, result, in.Source, in.SourceRef)
	decision := s.gate.Open(id, result)
	switch decision.State {
	case entities.GateStateResolved:
		res := decision.Resolution
		record.MarkResolved(res.Kind(), res.FinalType(), res.ResolvedBy(), res.ResolvedAt())
	default:
		record.MarkAwaitingInput()
	}

	if err := s.records.Create(ctx, record); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to store classification", zap.String("classification_id", id.String()), zap.Error(err))
		}
		return nil, fmt.Errorf("failed to store classification: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("transcript classified",
			zap.String("classification_id", id.String()),
			zap.String("source", string(in.Source)),
			zap.String("chosen_type", result.ChosenType.String()),
			zap.Int("confidence", result.ConfidencePercent),
			zap.String("state", string(decision.State)),
			zap.Bool("ambiguous", result.Ambiguous),
			zap.Bool("insufficient_content", result.InsufficientContent),
		)
	}
	return newClassification(record, decision), nil
}

// enrichFromRoster fills the participant count and external flag from the
// room roster. A lookup failure leaves the metadata untouched.
func (s *service) enrichFromRoster(ctx context.Context, room string, meta *entities.TranscriptMetadata) []entities.Notice {
	if s.roster == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, rosterTimeout)
	defer cancel()

	roster, err := s.roster.Roster(ctx, room)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("roster enrichment failed", zap.String("room", room), zap.Error(err))
		}
		return []entities.Notice{{
			Kind:    entities.NoticeEnrichmentFailed,
			Field:   "room",
			Message: fmt.Sprintf("could not read the participant list of room %q: %v", room, err),
		}}
	}

	if meta.ParticipantCount == 0 && roster.Count() > 0 {
		meta.ParticipantCount = roster.Count()
	}
	if roster.HasExternal() {
		meta.ExternalParticipant = true
	}
	return nil
}

// snapshot folds the override log into keyword adjustments. If the log
// cannot be read, classification proceeds unadjusted.
func (s *service) snapshot(ctx context.Context) entities.Adjustments {
	if s.overrides == nil {
		return entities.Adjustments{}
	}
	overrides, err := s.overrides.List(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to read override log, classifying without adjustments", zap.Error(err))
		}
		return entities.Adjustments{}
	}
	return entities.BuildAdjustments(overrides, s.opts.Policy)
}

// Get returns a stored classification
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Classification, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return newClassification(record, s.gate.Restore(record)), nil
}

// Respond resumes an awaiting classification with the user's answer
func (s *service) Respond(ctx context.Context, id uuid.UUID, resp gate.Response) (*Classification, error) {
	unlock := s.lock(id)
	defer unlock()

	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	before := s.gate.Restore(record)
	after, err := s.gate.Resume(ctx, before, resp)
	if err != nil {
		return nil, err
	}

	res := after.Resolution
	record.MarkResolved(res.Kind(), res.FinalType(), res.ResolvedBy(), res.ResolvedAt())
	record.AddNotices(after.Notices[len(before.Notices):]...)
	if err := s.records.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store decision: %w", err)
	}
	return newClassification(record, after), nil
}

// Adjustments returns the current learning snapshot
func (s *service) Adjustments(ctx context.Context) (entities.Adjustments, error) {
	if s.overrides == nil {
		return entities.Adjustments{}, nil
	}
	overrides, err := s.overrides.List(ctx)
	if err != nil {
		return entities.Adjustments{}, fmt.Errorf("failed to read override log: %w", err)
	}
	return entities.BuildAdjustments(overrides, s.opts.Policy), nil
}

// MeetingTypes lists every selectable type with its template
func (s *service) MeetingTypes() []MeetingTypeInfo {
	types := entities.AllMeetingTypes()
	out := make([]MeetingTypeInfo, 0, len(types))
	for _, t := range types {
		info := MeetingTypeInfo{Type: t, DisplayName: t.DisplayName()}
		if c, ok := s.selector.Catalog().Contract(t); ok {
			info.TemplateID = c.TemplateID
			info.Fields = c.FieldNames()
		}
		out = append(out, info)
	}
	return out
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*entities.ClassificationRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load classification: %w", err)
	}
	if record == nil {
		return nil, ucErrors.ErrClassificationNotFound
	}
	return record, nil
}

// lock serializes decisions and extractions on one classification
func (s *service) lock(id uuid.UUID) func() {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func newClassification(record *entities.ClassificationRecord, decision gate.Decision) *Classification {
	return &Classification{
		Decision:           decision,
		Source:             record.Source,
		SourceRef:          record.SourceRef,
		Metadata:           record.Metadata.Data(),
		ExtractionStatus:   record.ExtractionStatus,
		ExtractionAttempts: record.ExtractionAttempts,
		LastError:          record.LastError,
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
	}
}
