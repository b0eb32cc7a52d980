package chat_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/apex-intel/apex/internal/chat"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestModelStoreFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "active_model.json")
	store := chat.NewModelStore(path, "llama3.2:3b", testLogger())

	if got := store.Active(); got != "llama3.2:3b" {
		t.Errorf("Active() = %q, want fallback", got)
	}
}

func TestModelStoreSetActive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "active_model.json")
	store := chat.NewModelStore(path, "llama3.2:3b", testLogger())

	if err := store.SetActive("qwen2.5:7b"); err != nil {
		t.Fatalf("SetActive() error: %v", err)
	}
	if got := store.Active(); got != "qwen2.5:7b" {
		t.Errorf("Active() = %q, want qwen2.5:7b", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read override file: %v", err)
	}
	var override struct {
		Model string `json:"model"`
	}
	if err := json.Unmarshal(data, &override); err != nil {
		t.Fatalf("unmarshal override: %v", err)
	}
	if override.Model != "qwen2.5:7b" {
		t.Errorf("persisted model = %q, want qwen2.5:7b", override.Model)
	}
}

func TestModelStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "active_model.json")

	first := chat.NewModelStore(path, "llama3.2:3b", testLogger())
	if err := first.SetActive("qwen2.5:7b"); err != nil {
		t.Fatalf("SetActive() error: %v", err)
	}

	second := chat.NewModelStore(path, "llama3.2:3b", testLogger())
	if got := second.Active(); got != "qwen2.5:7b" {
		t.Errorf("Active() after restart = %q, want persisted override", got)
	}
}

func TestModelStoreRejectsBlank(t *testing.T) {
	store := chat.NewModelStore(filepath.Join(t.TempDir(), "m.json"), "fallback", testLogger())

	if err := store.SetActive("   "); !errors.Is(err, chat.ErrEmptyModel) {
		t.Errorf("SetActive(blank) error = %v, want ErrEmptyModel", err)
	}
}

func TestModelStoreInvalidOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "active_model.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := chat.NewModelStore(path, "fallback-model", testLogger())
	if got := store.Active(); got != "fallback-model" {
		t.Errorf("Active() = %q, want fallback on corrupt override", got)
	}
}
