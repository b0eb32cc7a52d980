package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex-intel/apex/internal/api"
	"github.com/apex-intel/apex/internal/chat"
	"github.com/apex-intel/apex/pkg/routes"
)

func settingsMux(t *testing.T, models []chat.ModelInfo) *http.ServeMux {
	t.Helper()
	store := chat.NewModelStore(filepath.Join(t.TempDir(), "active_model.json"), "llama3.2:3b", testLogger())
	mux := http.NewServeMux()
	routes.Register(mux, api.NewSettingsHandler(store, models, testLogger()).Routes())
	return mux
}

var catalog = []chat.ModelInfo{
	{Name: "llama3.2:3b", DisplayName: "Llama 3.2 3B", Kind: "local"},
	{Name: "qwen2.5:7b", DisplayName: "Qwen 2.5 7B", Kind: "local"},
}

func TestGetModel(t *testing.T) {
	rec := httptest.NewRecorder()
	settingsMux(t, catalog).ServeHTTP(rec, httptest.NewRequest("GET", "/settings/model", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var settings api.ModelSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if settings.Active != "llama3.2:3b" {
		t.Errorf("active = %q, want fallback", settings.Active)
	}
	if len(settings.Models) != 2 {
		t.Errorf("models = %d, want 2", len(settings.Models))
	}
}

func TestSetModel(t *testing.T) {
	mux := settingsMux(t, catalog)

	req := httptest.NewRequest("PUT", "/settings/model", strings.NewReader(`{"model":"qwen2.5:7b"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	var settings api.ModelSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if settings.Active != "qwen2.5:7b" {
		t.Errorf("active = %q, want qwen2.5:7b", settings.Active)
	}
}

func TestSetModelRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "nonsense"},
		{"empty model", `{"model":""}`},
		{"outside catalog", `{"model":"gpt-unknown"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			settingsMux(t, catalog).ServeHTTP(rec, httptest.NewRequest("PUT", "/settings/model", strings.NewReader(tt.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSetModelWithoutCatalog(t *testing.T) {
	rec := httptest.NewRecorder()
	settingsMux(t, nil).ServeHTTP(rec, httptest.NewRequest("PUT", "/settings/model", strings.NewReader(`{"model":"anything"}`)))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when no catalog is configured", rec.Code)
	}
}
