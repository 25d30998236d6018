package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode"

	openai "github.com/sashabaranov/go-openai"
)

// Default generation settings when the caller does not override them.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7

	// APIKeyEnv is the environment variable holding the OpenAI API key.
	APIKeyEnv = "OPENAI_API_KEY"
)

// OpenAI samples completions from the OpenAI chat completions API. One Sample
// call issues a single batched request asking for n choices at the configured
// temperature, then scores their agreement locally.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
	keyEnv      string
	baseURL     string
	logger      *slog.Logger
}

// OpenAIOption configures an OpenAI sampler.
type OpenAIOption func(*OpenAI)

// WithModel overrides the model identifier.
func WithModel(model string) OpenAIOption {
	return func(s *OpenAI) {
		if model != "" {
			s.model = model
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) OpenAIOption {
	return func(s *OpenAI) {
		s.temperature = float32(t)
	}
}

// WithLogger sets the logger used for request telemetry.
func WithLogger(logger *slog.Logger) OpenAIOption {
	return func(s *OpenAI) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBaseURL points the client at an alternate API endpoint, such as a local
// OpenAI-compatible server.
func WithBaseURL(baseURL string) OpenAIOption {
	return func(s *OpenAI) {
		s.baseURL = baseURL
	}
}

// WithAPIKeyEnv names the environment variable holding the API key.
func WithAPIKeyEnv(env string) OpenAIOption {
	return func(s *OpenAI) {
		if env != "" {
			s.keyEnv = env
		}
	}
}

// NewOpenAI builds an OpenAI sampler from the environment. The API key must
// be present in the configured key variable, OPENAI_API_KEY by default.
func NewOpenAI(opts ...OpenAIOption) (*OpenAI, error) {
	s := &OpenAI{
		model:       DefaultModel,
		temperature: DefaultTemperature,
		keyEnv:      APIKeyEnv,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	key := os.Getenv(s.keyEnv)
	if key == "" {
		return nil, fmt.Errorf("%s not set", s.keyEnv)
	}

	clientCfg := openai.DefaultConfig(key)
	if s.baseURL != "" {
		clientCfg.BaseURL = s.baseURL
	}
	s.client = openai.NewClientWithConfig(clientCfg)
	return s, nil
}

// Model returns the configured model identifier.
func (s *OpenAI) Model() string {
	return s.model
}

// Sample implements Sampler.
func (s *OpenAI) Sample(ctx context.Context, prompt string, n int) (*Result, error) {
	start := time.Now()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: s.temperature,
		N:           n,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) < n {
		return nil, fmt.Errorf("requested %d completions, got %d", n, len(resp.Choices))
	}

	responses := make([]string, n)
	for i := 0; i < n; i++ {
		responses[i] = resp.Choices[i].Message.Content
	}
	confidence := agreementScore(responses)

	s.logger.Debug("sampled completions",
		"model", s.model,
		"n", n,
		"confidence", confidence,
		"elapsed", time.Since(start))

	return &Result{Responses: responses, Confidence: confidence, Model: s.model}, nil
}

// agreementScore reduces a response set to one score in [0, 1]: the mean
// pairwise Jaccard similarity over normalized token sets. Identical sets
// score 1.0, fully disjoint sets 0.0.
func agreementScore(responses []string) float64 {
	if len(responses) < 2 {
		return 1.0
	}

	sets := make([]map[string]struct{}, len(responses))
	for i, response := range responses {
		sets[i] = tokenize(normalizeText(response))
	}

	var total float64
	pairs := 0
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			total += jaccardSimilarity(sets[i], sets[j])
			pairs++
		}
	}
	return total / float64(pairs)
}

// normalizeText lowercases the input and collapses every non-alphanumeric run
// into a single space.
func normalizeText(input string) string {
	if input == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(input))
	lastSpace := false
	for _, r := range strings.ToLower(input) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// tokenize splits normalized text into a set of distinct tokens.
func tokenize(input string) map[string]struct{} {
	parts := strings.Fields(input)
	tokens := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		tokens[part] = struct{}{}
	}
	return tokens
}

// jaccardSimilarity returns |a∩b| / |a∪b|, treating two empty sets as
// identical.
func jaccardSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
