// Package advice generates plain-language career guidance for a finished
// synergy analysis.
package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/okian/ascent/pkg/metrics"
)

const defaultModel = "gpt-4o-mini"

// Service produces advice text for an analyzed candidate.
type Service interface {
	// TeamFitAdvice turns the per-team analysis messages into a short
	// piece of guidance for the candidate.
	TeamFitAdvice(ctx context.Context, resumeText string, messages []string) (string, error)
}

// OpenAIService implements Service via chat completions.
type OpenAIService struct {
	client *openai.Client
	model  string
}

// NewOpenAIService creates a new advice service.
func NewOpenAIService(apiKey string, opts ...Option) *OpenAIService {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	s := &OpenAIService{
		client: &client,
		model:  defaultModel,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

const systemPrompt = `You are a career coach. Given a candidate's resume and
per-team fit assessments, write 2-3 sentences of concrete advice on which
team to pursue and what skills to strengthen. Be direct and specific.`

// TeamFitAdvice implements Service.
func (s *OpenAIService) TeamFitAdvice(ctx context.Context, resumeText string, messages []string) (string, error) {
	userPrompt := fmt.Sprintf("Resume:\n%s\n\nTeam assessments:\n%s",
		resumeText, strings.Join(messages, "\n"))

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:       s.model,
		Temperature: openai.Float(0.4),
		MaxTokens:   openai.Int(300),
	})
	if err != nil {
		metrics.RecordAdviceError()
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	if len(completion.Choices) == 0 {
		metrics.RecordAdviceError()
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// NoopService is used when no API key is configured. Analyses complete
// without advice instead of failing.
type NoopService struct{}

// TeamFitAdvice implements Service and always returns empty advice.
func (NoopService) TeamFitAdvice(ctx context.Context, resumeText string, messages []string) (string, error) {
	return "", nil
}
