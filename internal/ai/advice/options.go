package advice

// Option applies a configuration option to the OpenAIService.
type Option func(*OpenAIService)

// WithModel sets the chat model used for advice generation.
func WithModel(model string) Option {
	return func(s *OpenAIService) {
		if model != "" {
			s.model = model
		}
	}
}
