package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"botarena/application/state"
)

var ErrStoreClosed = errors.New("memory: store closed")

type record struct {
	payload   []byte
	updatedAt time.Time
}

// Store はプロセス内で完結する state.Store 実装。
// 開発用途とテスト用途を想定しており、再起動すると内容は失われる。
type Store struct {
	mu      sync.RWMutex
	records map[string]record
	clk     func() time.Time
	closed  bool
}

var _ state.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		records: make(map[string]record),
		clk:     time.Now,
	}
}

// WithClock はテスト用に時間ソースを差し替える。
func (s *Store) WithClock(clock func() time.Time) *Store {
	if clock != nil {
		s.clk = clock
	}
	return s
}

func (s *Store) Read(ctx context.Context, kind, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrStoreClosed
	}
	rec, ok := s.records[recordKey(kind, key)]
	if !ok {
		return nil, false, nil
	}
	return clonePayload(rec.payload), true, nil
}

func (s *Store) Write(ctx context.Context, kind, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.records[recordKey(kind, key)] = record{
		payload:   clonePayload(payload),
		updatedAt: s.clk(),
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, kind, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	delete(s.records, recordKey(kind, key))
	return nil
}

// UpdatedAt は最後に書き込まれた時刻を返す。
func (s *Store) UpdatedAt(kind, key string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[recordKey(kind, key)]
	return rec.updatedAt, ok
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func recordKey(kind, key string) string {
	return fmt.Sprintf("%s/%s", kind, key)
}

func clonePayload(p []byte) []byte {
	if p == nil {
		return nil
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out
}
