package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"botarena/server/auth"
)

// TokenVerifier resolves a bearer token to a player name.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

type playerKey struct{}

// RequirePlayer rejects requests without a valid bearer token and stores the
// token's player in the request context.
func RequirePlayer(v TokenVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(ctx, w, fmt.Errorf("%w: missing bearer token", auth.ErrUnauthorized))
			return
		}
		player, err := v.Verify(raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, playerKey{}, player)))
	})
}

func playerFrom(ctx context.Context) (string, bool) {
	p, ok := ctx.Value(playerKey{}).(string)
	return p, ok && p != ""
}
