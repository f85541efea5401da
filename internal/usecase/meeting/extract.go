package meeting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	ucErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/meeting-summarizer/pkg/ai"
	"github.com/johnquangdev/meeting-summarizer/pkg/jobcontext"
)

const extractionJob = "content_extraction"

// ExtractionOutput is a finished extraction
type ExtractionOutput struct {
	Classification *Classification
	Report         entities.RenderInput
	ReportKey      string
	Attempts       int
}

// Extract fills the resolved type's template from the transcript. It never
// reclassifies: a failed extraction keeps the resolved type and may simply be
// requested again.
func (s *service) Extract(ctx context.Context, id uuid.UUID) (*ExtractionOutput, error) {
	unlock := s.lock(id)
	defer unlock()

	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	decision := s.gate.Restore(record)
	if decision.Resolution == nil {
		return nil, ucErrors.ErrNotResolved
	}
	res := *decision.Resolution

	contract, err := s.selector.Select(res)
	if err != nil {
		return nil, err
	}
	if s.extractor == nil {
		return nil, ucErrors.ErrExtractorMissing
	}

	record.MarkExtractionRunning()
	if err := s.records.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store extraction status: %w", err)
	}

	jobCtx, cancel := jobcontext.JobBegin(ctx, id, extractionJob, s.opts.ExtractionTimeout)
	defer cancel()

	content, attempts, err := s.runExtraction(jobCtx, record.Transcript, contract)
	if err != nil {
		return nil, s.failExtraction(ctx, record, attempts, err)
	}

	report, err := s.selector.Render(res, content)
	if err != nil {
		return nil, s.failExtraction(ctx, record, attempts, err)
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, s.failExtraction(ctx, record, attempts, fmt.Errorf("failed to encode report: %w", err))
	}

	var key string
	if s.archive != nil {
		key, err = s.archive.SaveReport(ctx, id, payload)
		if err != nil && s.logger != nil {
			s.logger.Warn("failed to archive report", zap.String("classification_id", id.String()), zap.Error(err))
		}
	}

	record.MarkExtractionCompleted(payload)
	if err := s.records.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store extraction result: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("content extracted",
			zap.String("classification_id", id.String()),
			zap.String("template_id", report.TemplateID),
			zap.Int("attempts", attempts),
			zap.Strings("missing", report.Missing),
		)
	}
	return &ExtractionOutput{
		Classification: newClassification(record, decision),
		Report:         report,
		ReportKey:      key,
		Attempts:       attempts,
	}, nil
}

// runExtraction calls the extractor with at most MaxRetries retries, and only
// for transient failures.
func (s *service) runExtraction(ctx context.Context, text string, contract entities.TemplateContract) (map[string]any, int, error) {
	var (
		content  map[string]any
		attempts int
	)

	operation := func() error {
		attemptCtx := jobcontext.SetRetryAttempt(ctx, attempts)
		attempts++

		out, err := s.extractor.Extract(attemptCtx, text, contract)
		if err == nil {
			content = out
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		if s.logger != nil {
			meta := jobcontext.GetJobMetadata(attemptCtx)
			s.logger.Warn("extraction attempt failed",
				zap.String("classification_id", meta.JobID.String()),
				zap.Int("attempt", meta.RetryAttempt+1),
				zap.Error(err),
			)
		}
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), uint64(s.opts.MaxRetries)), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", ucErrors.ErrExtractionTimeout, err)
		}
		return nil, attempts, err
	}
	return content, attempts, nil
}

func (s *service) failExtraction(ctx context.Context, record *entities.ClassificationRecord, attempts int, cause error) error {
	record.MarkExtractionFailed(cause.Error())
	if err := s.records.Update(ctx, record); err != nil && s.logger != nil {
		s.logger.Error("failed to store extraction failure", zap.String("classification_id", record.ID.String()), zap.Error(err))
	}
	if s.logger != nil {
		s.logger.Error("content extraction failed",
			zap.String("classification_id", record.ID.String()),
			zap.Int("attempts", attempts),
			zap.Error(cause),
		)
	}
	return &ucErrors.ExtractionError{
		ClassificationID: record.ID.String(),
		Attempts:         attempts,
		Retryable:        isTransient(cause) || errors.Is(cause, ucErrors.ErrExtractionTimeout),
		Err:              cause,
	}
}

// isTransient covers provider errors worth retrying and malformed output,
// which a second sample often fixes.
func isTransient(err error) bool {
	return ai.IsRetryable(err) || errors.Is(err, ucErrors.ErrMalformedExtract)
}
