package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"botarena/application/service"
	"botarena/application/state"
	"botarena/domain"
	"botarena/internal/actor"
	"botarena/server/auth"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.DebugContext(ctx, "failed to write response", "err", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request failed", "status", status, "err", err)
	}
	writeJSON(ctx, w, status, errorBody{Error: err.Error()})
}

// statusFor maps sentinel errors to status codes. Sentinels are checked
// before CallError because actor failures wrap them.
func statusFor(err error) int {
	var callErr *actor.CallError
	switch {
	case errors.Is(err, service.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrBotNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrArenaNotInitialized), errors.Is(err, domain.ErrBotAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, state.ErrPersistence), errors.Is(err, actor.ErrHostClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &callErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
