package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrEmptyModel rejects an attempt to activate a blank model name.
var ErrEmptyModel = errors.New("model name must be non-empty")

type modelOverride struct {
	Model string `json:"model"`
}

// ModelStore tracks the active backend model with a file-backed
// override so the selection survives process restarts.
type ModelStore struct {
	mu       sync.Mutex
	path     string
	fallback string
	active   string
	logger   *slog.Logger
}

// NewModelStore creates a store persisting to path. The fallback is the
// configured default model used when no override has been written.
func NewModelStore(path, fallback string, logger *slog.Logger) *ModelStore {
	return &ModelStore{
		path:     path,
		fallback: fallback,
		logger:   logger.With("system", "chat"),
	}
}

// Active returns the current model: the in-process selection, then the
// persisted override, then the configured fallback.
func (s *ModelStore) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != "" {
		return s.active
	}

	if override := s.loadOverride(); override != "" {
		s.active = override
		return s.active
	}

	s.active = s.fallback
	return s.active
}

// SetActive records and persists a new model selection.
func (s *ModelStore) SetActive(model string) error {
	candidate := strings.TrimSpace(model)
	if candidate == "" {
		return ErrEmptyModel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.MarshalIndent(modelOverride{Model: candidate}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model override: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create model store dir: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write model override: %w", err)
	}

	s.active = candidate
	s.logger.Info("active model updated", "model", candidate)
	return nil
}

func (s *ModelStore) loadOverride() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read model override", "path", s.path, "error", err)
		}
		return ""
	}

	var override modelOverride
	if err := json.Unmarshal(data, &override); err != nil {
		s.logger.Warn("invalid model override file", "path", s.path, "error", err)
		return ""
	}
	return strings.TrimSpace(override.Model)
}
