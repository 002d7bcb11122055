package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"botarena/application/request"
	"botarena/application/service"
	"botarena/domain"
)

// ArenaAPI is the service surface the HTTP handlers drive.
type ArenaAPI interface {
	Details(ctx context.Context, req request.Arena) (domain.Arena, error)
	ActiveBots(ctx context.Context, req request.Arena) ([]domain.Bot, error)
	LiveBots(ctx context.Context, req request.Arena) ([]domain.Bot, error)
	CreateBot(ctx context.Context, req request.CreateBot) (domain.Bot, error)
	UnlistBot(ctx context.Context, req request.UnlistBot) error
	DeleteBot(ctx context.Context, req request.DeleteBot) error
	DeleteArena(ctx context.Context, req request.Arena) error
	PlayerBots(ctx context.Context, req request.Player) ([]uuid.UUID, error)
}

type ArenaHandler struct {
	api    ArenaAPI
	schema *BotSchema
	now    func() time.Time
}

func NewArenaHandler(api ArenaAPI, schema *BotSchema) *ArenaHandler {
	return &ArenaHandler{api: api, schema: schema, now: time.Now}
}

type botsBody struct {
	Arena string       `json:"arena"`
	Bots  []domain.Bot `json:"bots"`
}

type playerBotsBody struct {
	Player string      `json:"player"`
	BotIDs []uuid.UUID `json:"botIds"`
}

func (h *ArenaHandler) Details(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	arena, err := h.api.Details(ctx, h.arenaRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, arena)
}

func (h *ArenaHandler) ActiveBots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := h.arenaRequest(r)
	bots, err := h.api.ActiveBots(ctx, req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, botsBody{Arena: req.Arena, Bots: nonNil(bots)})
}

func (h *ArenaHandler) LiveBots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := h.arenaRequest(r)
	bots, err := h.api.LiveBots(ctx, req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, botsBody{Arena: req.Arena, Bots: nonNil(bots)})
}

// CreateBot expects RequirePlayer in front of it.
func (h *ArenaHandler) CreateBot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player, ok := playerFrom(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no player in context", service.ErrInvalidPayload))
		return
	}
	spec, err := h.schema.Decode(r.Body)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	bot, err := h.api.CreateBot(ctx, request.CreateBot{
		Meta:   h.meta(r),
		Arena:  r.PathValue("name"),
		Player: player,
		Bot:    spec,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, bot)
}

func (h *ArenaHandler) UnlistBot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	err = h.api.UnlistBot(ctx, request.UnlistBot{Meta: h.meta(r), Arena: r.PathValue("name"), BotID: id})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ArenaHandler) DeleteBot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.api.DeleteBot(ctx, request.DeleteBot{Meta: h.meta(r), BotID: id}); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ArenaHandler) DeleteArena(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.api.DeleteArena(ctx, h.arenaRequest(r)); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ArenaHandler) PlayerBots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")
	ids, err := h.api.PlayerBots(ctx, request.Player{Meta: h.meta(r), Player: name})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	writeJSON(ctx, w, http.StatusOK, playerBotsBody{Player: name, BotIDs: ids})
}

func (h *ArenaHandler) arenaRequest(r *http.Request) request.Arena {
	return request.Arena{Meta: h.meta(r), Arena: r.PathValue("name")}
}

func (h *ArenaHandler) meta(r *http.Request) request.Meta {
	id := r.Header.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	return request.Meta{RequestID: id, OccurredAt: h.now()}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bot id: %w", service.ErrInvalidPayload, err)
	}
	return id, nil
}

func nonNil(bots []domain.Bot) []domain.Bot {
	if bots == nil {
		return []domain.Bot{}
	}
	return bots
}
