package content

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/learnflow/learnflow/internal/llm"
)

// Service generates learning packages for topic queries.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a learning package generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// ModelID reports the configured model, for the health endpoint.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}

// Generate builds the prompt for the query, delegates to the provider, and
// returns the package parsed from the validated response. Fields mirror the
// provider payload exactly; nothing is rewritten or filled in.
func (s *Service) Generate(ctx context.Context, query string) (*LearningPackage, error) {
	ctx = llm.WithPurpose(ctx, "learning-package")

	req := llm.Request{
		System: packageSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPackageUserMessage(query)},
		},
		Schema:      PackageSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("package generation: %w", err)
	}

	var pkg LearningPackage
	if err := json.Unmarshal(resp.Content, &pkg); err != nil {
		// Content already passed schema validation, so this is our bug,
		// not the provider's.
		return nil, fmt.Errorf("parse package response: %w", err)
	}

	if err := checkQuizAnswers(resp.Content, pkg.Quiz); err != nil {
		return nil, fmt.Errorf("package generation: %w", err)
	}

	return &pkg, nil
}

// checkQuizAnswers enforces the cross-field rule JSON Schema cannot express:
// every correctAnswer must be one of its question's options.
func checkQuizAnswers(raw json.RawMessage, quiz []QuizQuestion) error {
	for i, q := range quiz {
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return &llm.ErrSchemaViolation{
				Content: raw,
				Err:     fmt.Errorf("quiz item %d: correctAnswer %q is not one of the options", i, q.CorrectAnswer),
			}
		}
	}
	return nil
}
