package watcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meeting-summarizer/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/gate"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
)

const (
	metaSuffix           = ".meta.yaml"
	decisionSuffix       = ".decision.yaml"
	classificationSuffix = ".classification.json"
	reportSuffix         = ".report.json"
)

type fileKind int

const (
	kindIgnored fileKind = iota
	kindTranscript
	kindDecision
)

func kindOf(path string) fileKind {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasPrefix(name, "."):
		return kindIgnored
	case strings.HasSuffix(name, decisionSuffix):
		return kindDecision
	case strings.HasSuffix(name, ".txt"), strings.HasSuffix(name, ".vtt"):
		return kindTranscript
	}
	return kindIgnored
}

// stem maps "inbox/standup.vtt" and "inbox/standup.decision.yaml" to "inbox/standup"
func stem(path string) string {
	if strings.HasSuffix(strings.ToLower(path), decisionSuffix) {
		return path[:len(path)-len(decisionSuffix)]
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// decisionFile is the user's answer to a pending prompt
type decisionFile struct {
	Accept bool   `yaml:"accept"`
	Type   string `yaml:"type"`
	By     string `yaml:"by"`
}

// Inbox turns inbox files into classifications. Each transcript gets a
// <name>.classification.json next to it; a resolved one also gets a
// <name>.report.json once extraction succeeds.
type Inbox struct {
	svc    meeting.Service
	logger *zap.Logger
}

// NewInbox creates an Inbox backed by svc
func NewInbox(svc meeting.Service, logger *zap.Logger) *Inbox {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inbox{svc: svc, logger: logger}
}

// Handle routes an inbox file by kind and is the watcher's EventHandler
func (in *Inbox) Handle(ctx context.Context, path string) error {
	switch kindOf(path) {
	case kindTranscript:
		return in.HandleTranscript(ctx, path)
	case kindDecision:
		return in.HandleDecision(ctx, path)
	}
	return nil
}

// HandleTranscript classifies a .txt or .vtt transcript
func (in *Inbox) HandleTranscript(ctx context.Context, path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	base := stem(path)

	c, err := in.svc.Classify(ctx, meeting.ClassifyInput{
		Text:      string(text),
		Metadata:  in.readMetadata(base),
		Source:    entities.SourceWatcher,
		SourceRef: filepath.Base(path),
	})
	if err != nil {
		return fmt.Errorf("classify %s: %w", filepath.Base(path), err)
	}
	if err := writeJSON(base+classificationSuffix, presenter.ToClassificationResponse(c)); err != nil {
		return err
	}

	if c.Decision.Resolution == nil {
		in.logger.Info("classification awaiting decision",
			zap.String("file", filepath.Base(path)),
			zap.String("tentative_type", string(c.Decision.Result.ChosenType)),
			zap.Int("confidence", c.Decision.Result.ConfidencePercent),
			zap.String("decision_file", filepath.Base(base+decisionSuffix)))

		// a decision may have been dropped in before the transcript
		if _, err := os.Stat(base + decisionSuffix); err == nil {
			return in.HandleDecision(ctx, base+decisionSuffix)
		}
		return nil
	}

	in.logger.Info("classification resolved",
		zap.String("file", filepath.Base(path)),
		zap.String("type", string(c.Decision.Resolution.FinalType())),
		zap.Int("confidence", c.Decision.Resolution.ConfidencePercent()))
	return in.extract(ctx, c.Decision.ClassificationID, base)
}

// HandleDecision applies a <name>.decision.yaml to the pending classification
// recorded in <name>.classification.json
func (in *Inbox) HandleDecision(ctx context.Context, path string) error {
	base := stem(path)

	id, err := readClassificationID(base + classificationSuffix)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// transcript not processed yet; HandleTranscript picks the decision up
			return nil
		}
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read decision: %w", err)
	}
	var df decisionFile
	if err := yaml.Unmarshal(raw, &df); err != nil {
		return fmt.Errorf("parse decision %s: %w", filepath.Base(path), err)
	}

	resp := gate.Response{Accept: df.Accept, By: df.By}
	if !df.Accept {
		t, err := entities.ParseMeetingType(df.Type)
		if err != nil {
			return fmt.Errorf("decision %s: %w", filepath.Base(path), err)
		}
		resp.Type = t
	}
	if resp.By == "" {
		resp.By = "watcher"
	}

	c, err := in.svc.Respond(ctx, id, resp)
	if err != nil {
		if errors.Is(err, ucErrors.ErrAlreadyResolved) {
			in.logger.Info("decision ignored, classification already resolved", zap.String("file", filepath.Base(path)))
			return nil
		}
		return fmt.Errorf("respond %s: %w", id, err)
	}
	if err := writeJSON(base+classificationSuffix, presenter.ToClassificationResponse(c)); err != nil {
		return err
	}

	in.logger.Info("classification resolved by decision",
		zap.String("file", filepath.Base(path)),
		zap.String("type", string(c.Decision.Resolution.FinalType())),
		zap.String("kind", string(c.Decision.Resolution.Kind())))
	return in.extract(ctx, id, base)
}

func (in *Inbox) extract(ctx context.Context, id uuid.UUID, base string) error {
	out, err := in.svc.Extract(ctx, id)
	if err != nil {
		if errors.Is(err, ucErrors.ErrExtractorMissing) {
			return nil
		}
		// keep the failure visible next to the transcript
		if c, getErr := in.svc.Get(ctx, id); getErr == nil {
			_ = writeJSON(base+classificationSuffix, presenter.ToClassificationResponse(c))
		}
		return fmt.Errorf("extract %s: %w", id, err)
	}
	if err := writeJSON(base+classificationSuffix, presenter.ToClassificationResponse(out.Classification)); err != nil {
		return err
	}
	return writeJSON(base+reportSuffix, presenter.ToExtractionResponse(out))
}

func (in *Inbox) readMetadata(base string) map[string]any {
	raw, err := os.ReadFile(base + metaSuffix)
	if err != nil {
		return nil
	}
	var meta map[string]any
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		in.logger.Warn("ignoring malformed metadata sidecar", zap.String("file", filepath.Base(base+metaSuffix)), zap.Error(err))
		return nil
	}
	return meta
}

func readClassificationID(path string) (uuid.UUID, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return uuid.Nil, err
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	id, err := uuid.Parse(resp.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return id, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return os.Rename(tmp, path)
}
