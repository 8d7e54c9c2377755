// Package provider constructs Anthropic API clients.
package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const APIVersion = "2023-06-01"

// Factory builds a client for an API key. Callers construct clients lazily,
// only once a generation is actually requested.
type Factory func(apiKey string) *anthropic.Client

// NewAnthropicClient returns a client authenticated with apiKey. Retries are
// disabled; a failed call surfaces as-is. opts are applied last so tests can
// swap the transport.
func NewAnthropicClient(apiKey string, opts ...option.RequestOption) *anthropic.Client {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	c := anthropic.NewClient(append(base, opts...)...)
	return &c
}

// NewFactory returns a Factory that applies opts to every client it builds.
func NewFactory(opts ...option.RequestOption) Factory {
	return func(apiKey string) *anthropic.Client {
		return NewAnthropicClient(apiKey, opts...)
	}
}
