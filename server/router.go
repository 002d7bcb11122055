package server

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"botarena/server/handler"
)

type RouteConfig struct {
	API         handler.ArenaAPI
	Tokens      handler.TokenVerifier
	Schema      *handler.BotSchema
	Activations func() map[string]int

	StreamInterval    time.Duration
	StreamIdleTimeout time.Duration
}

func Route(cfg RouteConfig) http.Handler {
	arenas := handler.NewArenaHandler(cfg.API, cfg.Schema)
	authed := func(h http.HandlerFunc) http.Handler {
		return handler.RequirePlayer(cfg.Tokens, h)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", handler.NewHealthHandler(cfg.Activations))
	mux.HandleFunc("GET /api/arenas/{name}", arenas.Details)
	mux.HandleFunc("GET /api/arenas/{name}/bots/active", arenas.ActiveBots)
	mux.HandleFunc("GET /api/arenas/{name}/bots/live", arenas.LiveBots)
	mux.Handle("POST /api/arenas/{name}/bots", authed(arenas.CreateBot))
	mux.Handle("DELETE /api/arenas/{name}/bots/{id}", authed(arenas.UnlistBot))
	mux.Handle("DELETE /api/arenas/{name}", authed(arenas.DeleteArena))
	mux.Handle("DELETE /api/bots/{id}", authed(arenas.DeleteBot))
	mux.HandleFunc("GET /api/players/{name}/bots", arenas.PlayerBots)
	mux.Handle("GET /ws/arenas/{name}", handler.NewStreamHandler(cfg.API, cfg.StreamInterval, cfg.StreamIdleTimeout))

	return otelhttp.NewHandler(mux, "botarena",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			if r.Pattern != "" {
				return r.Pattern
			}
			return r.Method + " " + r.URL.Path
		}),
	)
}
