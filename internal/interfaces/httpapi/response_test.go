package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/liamgecko/fantasy-football/external/espn"
	"github.com/liamgecko/fantasy-football/internal/usecase"
)

func TestWriteData_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeData(context.Background(), rec, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
	if _, ok := body["meta"]; ok {
		t.Fatalf("did not expect meta key without metadata")
	}
}

func TestWriteDataWithMeta_IncludesMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDataWithMeta(context.Background(), rec, []string{}, map[string]int{"season": 2025})

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	meta, ok := body["meta"].(map[string]any)
	if !ok {
		t.Fatalf("expected meta object in response")
	}
	if got, _ := meta["season"].(float64); got != 2025 {
		t.Fatalf("expected meta.season=2025, got %v", meta["season"])
	}
}

func TestWriteError_InvalidInput(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, "teams", fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["error"].(string); got == "" {
		t.Fatalf("expected error message in response")
	}
}

func TestWriteError_ProviderStatusPassthrough(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("fetch roster: %w", &espn.APIError{
		StatusCode: http.StatusNotFound,
		Body:       "not found",
		URL:        "https://example.com/teams/99",
	})
	writeError(context.Background(), rec, "team detail", err)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected upstream status 404, got %d", rec.Code)
	}

	var body map[string]any
	if decodeErr := sonic.Unmarshal(rec.Body.Bytes(), &body); decodeErr != nil {
		t.Fatalf("unmarshal response body: %v", decodeErr)
	}
	if got, _ := body["error"].(string); got != "Failed to load team detail from ESPN" {
		t.Fatalf("unexpected error message: %q", got)
	}
	if got, _ := body["details"].(string); got == "" {
		t.Fatalf("expected details in provider error response")
	}
}

func TestWriteError_UnknownErrorHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, "players", fmt.Errorf("snapshot file corrupted at offset 12"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["error"].(string); got != "Unexpected server error" {
		t.Fatalf("expected generic error message, got %q", got)
	}
}
