package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"botarena/domain"
	"botarena/server/auth"
)

type mode string

const (
	modeCreate mode = "create"
	modeList   mode = "list"
	modeWatch  mode = "watch"
)

func main() {
	var (
		modeFlag        = flag.String("mode", string(modeCreate), "client mode: create|list|watch")
		addrFlag        = flag.String("addr", "http://localhost:9090", "target address (scheme required)")
		totalFlag       = flag.Int("total", 100, "total number of requests to send")
		concurrencyFlag = flag.Int("concurrency", 10, "number of concurrent workers")
		playersFlag     = flag.Int("players", 10, "number of distinct players creating bots")
		arenaFlag       = flag.String("arena", "alpha", "arena name")
		watchFlag       = flag.Duration("watch", 10*time.Second, "how long to follow the arena stream in watch mode")
	)
	flag.Parse()

	if *totalFlag <= 0 {
		log.Fatalf("total must be positive")
	}
	if *concurrencyFlag <= 0 {
		log.Fatalf("concurrency must be positive")
	}
	if *concurrencyFlag > *totalFlag {
		*concurrencyFlag = *totalFlag
	}

	cfg := loadConfig{
		Mode:        mode(*modeFlag),
		Addr:        *addrFlag,
		Total:       *totalFlag,
		Concurrency: *concurrencyFlag,
		Players:     max(*playersFlag, 1),
		Arena:       *arenaFlag,
	}

	start := time.Now()
	var err error
	switch cfg.Mode {
	case modeCreate:
		var tokens *auth.Tokens
		tokens, err = auth.NewTokens(os.Getenv("AUTH_SECRET"))
		if err == nil {
			err = runHTTP(cfg, createRequest(cfg, tokens))
		}
	case modeList:
		err = runHTTP(cfg, listRequest(cfg))
	case modeWatch:
		ctx, cancel := context.WithTimeout(context.Background(), *watchFlag)
		defer cancel()
		err = runWatch(ctx, cfg)
	default:
		log.Fatalf("unsupported mode: %s", cfg.Mode)
	}
	if err != nil {
		log.Fatalf("load failed: %v", err)
	}
	log.Printf("completed %s against arena %s in %s", cfg.Mode, cfg.Arena, time.Since(start))
}

type loadConfig struct {
	Mode        mode
	Addr        string
	Total       int
	Concurrency int
	Players     int
	Arena       string
}

// requestFunc builds the seq-th request of a worker.
type requestFunc func(workerID, seq int) (*http.Request, error)

func runHTTP(cfg loadConfig, build requestFunc) error {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	success, failure := runWorkers(cfg, client, build)
	log.Printf("%s mode complete (success=%d failure=%d)", cfg.Mode, success, failure)
	return nil
}

func runWorkers(cfg loadConfig, client *http.Client, build requestFunc) (int64, int64) {
	var success int64
	var failure int64
	var wg sync.WaitGroup
	wg.Add(cfg.Concurrency)

	requestsPerWorker, remainder := divideWork(cfg.Total, cfg.Concurrency)
	reqID := uint64(0)

	for worker := 0; worker < cfg.Concurrency; worker++ {
		count := requestsPerWorker
		if worker < remainder {
			count++
		}
		go func(workerID, n int) {
			defer wg.Done()
			for i := 0; i < n; i++ {
				id := atomic.AddUint64(&reqID, 1)
				req, err := build(workerID, int(id))
				if err != nil {
					log.Printf("[worker %d] request error: %v", workerID, err)
					atomic.AddInt64(&failure, 1)
					continue
				}
				resp, err := client.Do(req)
				if err != nil {
					log.Printf("[worker %d] http error: %v", workerID, err)
					atomic.AddInt64(&failure, 1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					atomic.AddInt64(&success, 1)
				} else {
					log.Printf("[worker %d] non-success status: %s", workerID, resp.Status)
					atomic.AddInt64(&failure, 1)
				}
			}
		}(worker, count)
	}
	wg.Wait()
	return success, failure
}

func divideWork(total, workers int) (int, int) {
	return total / workers, total % workers
}

// createRequest は seq ごとにプレイヤーを巡回させてボット作成リクエストを組み立てます。
func createRequest(cfg loadConfig, tokens *auth.Tokens) requestFunc {
	target := cfg.Addr + "/api/arenas/" + url.PathEscape(cfg.Arena) + "/bots"
	return func(workerID, seq int) (*http.Request, error) {
		player := fmt.Sprintf("player-%d", seq%cfg.Players)
		tok, err := tokens.Issue(player, time.Hour)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(domain.BotToCreate{
			Name:           fmt.Sprintf("bot-%d-%d", workerID, seq),
			MaximumHealth:  100,
			MaximumStamina: 100,
		})
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(string(body)))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+tok)
		req.Header.Set("X-Request-ID", fmt.Sprintf("loadgen-%d-%d", workerID, seq))
		return req, nil
	}
}

func listRequest(cfg loadConfig) requestFunc {
	target := cfg.Addr + "/api/arenas/" + url.PathEscape(cfg.Arena) + "/bots/active"
	return func(workerID, seq int) (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Request-ID", fmt.Sprintf("loadgen-%d-%d", workerID, seq))
		return req, nil
	}
}

func runWatch(ctx context.Context, cfg loadConfig) error {
	u, err := url.Parse(cfg.Addr)
	if err != nil {
		return fmt.Errorf("invalid addr: %w", err)
	}
	u.Scheme = strings.Replace(u.Scheme, "http", "ws", 1)
	u.Path = "/ws/arenas/" + url.PathEscape(cfg.Arena)

	conn, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		return err
	}
	defer conn.CloseNow()

	frames := 0
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("watch mode complete (frames=%d)", frames)
				return nil
			}
			return err
		}
		frames++
		var frame struct {
			Bots []domain.Bot `json:"bots"`
		}
		if err := json.Unmarshal(data, &frame); err != nil {
			return fmt.Errorf("decode frame: %w", err)
		}
		log.Printf("frame %d: %d active bots", frames, len(frame.Bots))
	}
}
