package generator

import (
	"context"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/letter-blog/internal/apperr"
	"github.com/petasbytes/letter-blog/internal/credential"
	"github.com/petasbytes/letter-blog/internal/metrics"
	"github.com/petasbytes/letter-blog/internal/prompt"
	"github.com/petasbytes/letter-blog/internal/provider"
	"github.com/petasbytes/letter-blog/internal/telemetry"
)

// CredentialResolver yields the API key for a run.
type CredentialResolver interface {
	Resolve() (credential.Credential, error)
}

type Service struct {
	Resolver  CredentialResolver
	NewClient provider.Factory
	Model     anthropic.Model
	MaxTokens int64
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
	// OnCredential, when set, is called with the resolved credential before
	// the request is sent.
	OnCredential func(credential.Credential)
}

// Generate sends memoryText to the model and returns the first text block of
// the reply. Transport and API errors are returned unchanged.
func (s *Service) Generate(ctx context.Context, memoryText string) (string, error) {
	cred, err := s.Resolver.Resolve()
	if err != nil {
		return "", err
	}
	if s.NewClient == nil {
		return "", apperr.New(apperr.ClientUnavailable, "anthropic client is not available")
	}
	if s.OnCredential != nil {
		s.OnCredential(cred)
	}
	client := s.NewClient(cred.Value)
	if client == nil {
		return "", apperr.New(apperr.ClientUnavailable, "anthropic client is not available")
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	text := prompt.Build(memoryText, now())
	estimated := prompt.EstimateTokens(text)
	fields := metrics.Measure(memoryText).Fields()
	fields["model"] = string(s.Model)
	fields["max_tokens"] = s.MaxTokens
	fields["prompt_bytes"] = len(text)
	fields["estimated_tokens"] = estimated
	fields["credential_tier"] = string(cred.Tier)
	telemetry.Emit(ctx, "prompt_prepared", fields)
	logger.Debug("prompt prepared",
		slog.String("model", string(s.Model)),
		slog.Int("prompt_bytes", len(text)),
		slog.Int("estimated_tokens", estimated))

	start := time.Now()
	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.Model,
		MaxTokens: s.MaxTokens,
		Messages:  []anthropic.MessageParam{prompt.Message(text)},
	})
	if err != nil {
		telemetry.Emit(ctx, "generation_failed", map[string]any{
			"model":       string(s.Model),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return "", err
	}

	out, ok := firstText(msg)
	telemetry.Emit(ctx, "generation_complete", map[string]any{
		"model":         string(msg.Model),
		"stop_reason":   string(msg.StopReason),
		"input_tokens":  msg.Usage.InputTokens,
		"output_tokens": msg.Usage.OutputTokens,
		"duration_ms":   time.Since(start).Milliseconds(),
		"has_text":      ok,
	})
	if !ok {
		return "", apperr.New(apperr.EmptyResponse, "response contained no text")
	}
	return out, nil
}

func firstText(msg *anthropic.Message) (string, bool) {
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			return tb.Text, true
		}
	}
	return "", false
}
