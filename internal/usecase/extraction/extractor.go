package extraction

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/pkg/ai"
)

// ContentExtractor fills a template contract from a transcript
type ContentExtractor interface {
	Extract(ctx context.Context, transcript string, contract entities.TemplateContract) (map[string]any, error)
}

// LLMExtractor extracts content with a chat model, one call per chunk
type LLMExtractor struct {
	provider ai.Provider
	chunker  *Chunker
	parser   *Parser
	logger   *zap.Logger
}

// NewLLMExtractor creates an extractor over the given provider
func NewLLMExtractor(provider ai.Provider, chunker *Chunker, logger *zap.Logger) *LLMExtractor {
	if chunker == nil {
		chunker = NewChunker()
	}
	return &LLMExtractor{
		provider: provider,
		chunker:  chunker,
		parser:   NewParser(),
		logger:   logger,
	}
}

// Extract runs the provider over each chunk and merges the answers. Provider
// errors are wrapped unchanged so callers can classify them.
func (e *LLMExtractor) Extract(ctx context.Context, transcript string, contract entities.TemplateContract) (map[string]any, error) {
	system := SystemPrompt(contract)
	schema := BuildSchema(contract)
	chunks := e.chunker.Split(transcript)

	if e.logger != nil {
		e.logger.Info("extracting meeting content",
			zap.String("provider", e.provider.Name()),
			zap.String("model", e.provider.Model()),
			zap.String("template_id", contract.TemplateID),
			zap.Int("chunks", len(chunks)),
		)
	}

	parts := make([]map[string]any, 0, len(chunks))
	for _, chunk := range chunks {
		raw, err := e.provider.Complete(ctx, ai.CompletionRequest{
			SystemPrompt: system,
			UserPrompt:   UserPrompt(chunk),
			SchemaName:   contract.TemplateID,
			Schema:       schema,
		})
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", chunk.Index, chunk.Total, err)
		}

		part, err := e.parser.Parse(raw)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("extractor returned malformed output",
					zap.Int("chunk", chunk.Index),
					zap.Int("length", len(raw)),
					zap.Error(err),
				)
			}
			return nil, fmt.Errorf("chunk %d/%d: %w", chunk.Index, chunk.Total, err)
		}
		parts = append(parts, part)
	}

	return Merge(contract, parts), nil
}
