package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"botarena/domain"
	"botarena/server/auth"
)

func TestDivideWork(t *testing.T) {
	per, rem := divideWork(10, 3)
	if per != 3 || rem != 1 {
		t.Fatalf("expected 3 r1, got %d r%d", per, rem)
	}
}

func TestRunWorkers_CreateRotatesPlayers(t *testing.T) {
	tokens, err := auth.NewTokens("secret")
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}

	var mu sync.Mutex
	players := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/arenas/alpha/bots" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		raw := r.Header.Get("Authorization")[len("Bearer "):]
		player, err := tokens.Verify(raw)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var spec domain.BotToCreate
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil || spec.Name == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		players[player]++
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	cfg := loadConfig{Mode: modeCreate, Addr: srv.URL, Total: 12, Concurrency: 4, Players: 3, Arena: "alpha"}
	success, failure := runWorkers(cfg, srv.Client(), createRequest(cfg, tokens))
	if success != 12 || failure != 0 {
		t.Fatalf("expected 12/0, got %d/%d", success, failure)
	}
	if len(players) != 3 {
		t.Fatalf("expected 3 players, got %v", players)
	}
	for p, n := range players {
		if n != 4 {
			t.Fatalf("player %s created %d bots, want 4", p, n)
		}
	}
}

func TestRunWorkers_CountsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := loadConfig{Mode: modeList, Addr: srv.URL, Total: 5, Concurrency: 2, Players: 1, Arena: "alpha"}
	success, failure := runWorkers(cfg, srv.Client(), listRequest(cfg))
	if success != 0 || failure != 5 {
		t.Fatalf("expected 0/5, got %d/%d", success, failure)
	}
}
