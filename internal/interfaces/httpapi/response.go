package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/liamgecko/fantasy-football/external/espn"
	"github.com/liamgecko/fantasy-football/internal/usecase"
)

type dataEnvelope struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeData(ctx context.Context, w http.ResponseWriter, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeData")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, dataEnvelope{Data: data})
}

func writeDataWithMeta(ctx context.Context, w http.ResponseWriter, data, meta any) {
	ctx, span := startSpan(ctx, "httpapi.writeDataWithMeta")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, dataEnvelope{Data: data, Meta: meta})
}

// writeError maps a failure onto the response contract. Provider errors
// pass the upstream status through with a resource-specific message,
// request errors map to 4xx, and everything else collapses to a generic
// 500 so internals never leak.
func writeError(ctx context.Context, w http.ResponseWriter, resource string, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	var apiErr *espn.APIError
	if errors.As(err, &apiErr) {
		writeJSON(ctx, w, apiErr.StatusCode, errorBody{
			Error:   "Failed to load " + resource + " from ESPN",
			Details: apiErr.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		writeJSON(ctx, w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		writeJSON(ctx, w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, usecase.ErrDependencyUnavailable), errors.Is(err, espn.ErrUnavailable):
		writeJSON(ctx, w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
	default:
		writeInternalError(ctx, w)
	}
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{Error: "Unexpected server error"})
}
