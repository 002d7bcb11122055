package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/sync/errgroup"

	"botarena/application/request"
	"botarena/domain"
)

const (
	DefaultStreamInterval    = time.Second
	DefaultStreamIdleTimeout = 30 * time.Second
	writeTimeout             = 5 * time.Second
)

var (
	errViewerIdle   = errors.New("viewer idle")
	errClientClosed = errors.New("client closed")
)

// ActiveBotsLister lists the bots a viewer is shown.
type ActiveBotsLister interface {
	ActiveBots(ctx context.Context, req request.Arena) ([]domain.Bot, error)
}

// StreamHandler pushes the active bots of one arena over a websocket. Every
// push counts as a ping of the arena's processing actor, so an open stream
// keeps the arena running.
type StreamHandler struct {
	bots        ActiveBotsLister
	interval    time.Duration
	idleTimeout time.Duration
}

func NewStreamHandler(bots ActiveBotsLister, interval, idleTimeout time.Duration) *StreamHandler {
	if interval <= 0 {
		interval = DefaultStreamInterval
	}
	if idleTimeout <= 0 {
		idleTimeout = DefaultStreamIdleTimeout
	}
	return &StreamHandler{bots: bots, interval: interval, idleTimeout: idleTimeout}
}

type streamFrame struct {
	Arena string       `json:"arena"`
	At    time.Time    `json:"at"`
	Bots  []domain.Bot `json:"bots"`
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // 開発用: Origin チェックをスキップ
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to accept", "err", err)
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(4 << 10)

	viewer := domain.NewViewer(r.PathValue("name"))
	slog.DebugContext(ctx, "viewer attached", "viewer_id", viewer.ID, "arena", viewer.Arena)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return h.readLoop(gctx, conn) })
	eg.Go(func() error { return h.pushLoop(gctx, conn, viewer) })
	eg.Go(func() error { return h.watchLoop(gctx, conn, viewer) })
	err = eg.Wait()

	switch {
	case errors.Is(err, errClientClosed):
		viewer.Close(domain.IdleNone)
		slog.DebugContext(ctx, "viewer detached", "viewer_id", viewer.ID)
	case errors.Is(err, errViewerIdle):
		slog.InfoContext(ctx, "viewer idle", "viewer_id", viewer.ID, "reason", viewer.CloseReason().String())
		_ = conn.Close(websocket.StatusPolicyViolation, "idle")
	case ctx.Err() != nil:
		_ = conn.Close(websocket.StatusGoingAway, "")
	default:
		slog.WarnContext(ctx, "stream failed", "viewer_id", viewer.ID, "arena", viewer.Arena, "err", err)
		_ = conn.Close(websocket.StatusInternalError, "stream failed")
	}
}

// readLoop は受信を捨て続け、pong と close フレームを処理させます。
func (h *StreamHandler) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return errClientClosed
			}
			return err
		}
	}
}

func (h *StreamHandler) pushLoop(ctx context.Context, conn *websocket.Conn, viewer *domain.Viewer) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		if err := h.push(ctx, conn, viewer); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn, viewer *domain.Viewer) error {
	bots, err := h.bots.ActiveBots(ctx, request.Arena{
		Meta:  request.Meta{RequestID: viewer.ID.String(), OccurredAt: time.Now()},
		Arena: viewer.Arena,
	})
	if err != nil {
		return err
	}
	data, err := json.Marshal(streamFrame{Arena: viewer.Arena, At: time.Now().UTC(), Bots: nonNil(bots)})
	if err != nil {
		return err
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := conn.Write(wctx, websocket.MessageText, data); err != nil {
		return err
	}
	viewer.TouchPush()
	return nil
}

// watchLoop は ping で生存確認を行い、活動が途絶えた viewer を切断します。
func (h *StreamHandler) watchLoop(ctx context.Context, conn *websocket.Conn, viewer *domain.Viewer) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		pctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := conn.Ping(pctx)
		cancel()
		if err == nil {
			viewer.TouchPong()
		}
		if idle, reason := viewer.IsIdle(h.idleTimeout); idle {
			viewer.Close(reason)
			return errViewerIdle
		}
	}
}
