// Package chat provides the narrow chat-completion surface consumed by
// the analysis pipeline, backed by go-agents with a persisted
// active-model override.
package chat

import (
	"context"
	"errors"
)

// ErrChat indicates a transport or backend failure during a completion
// call. Callers in the pipeline recover with stub fallbacks rather than
// propagating it.
var ErrChat = errors.New("chat completion failed")

// Client is the completion interface the pipeline depends on. Every
// call carries at most one system prompt and one user payload.
type Client interface {
	Chat(ctx context.Context, system, user string) (string, error)

	// Demo reports whether the backend is running in demo mode, in
	// which case callers substitute stub payloads without a call.
	Demo() bool
}

// ModelInfo describes one selectable backend model.
type ModelInfo struct {
	Name        string `json:"name" toml:"name"`
	DisplayName string `json:"display_name" toml:"display_name"`
	Kind        string `json:"kind" toml:"kind"`
}
