package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrPersistence wraps every failure reported by a Store.
var ErrPersistence = errors.New("state: persistence failure")

// Store is the durable storage shared by all actor activations. Records are
// addressed by actor kind and key and hold an opaque payload.
type Store interface {
	Read(ctx context.Context, kind, key string) (payload []byte, ok bool, err error)
	Write(ctx context.Context, kind, key string, payload []byte) error
	Clear(ctx context.Context, kind, key string) error
}

// Persistent is the typed state of one actor. It is owned by a single
// activation and must only be touched from that activation's turns.
type Persistent[T any] struct {
	store  Store
	kind   string
	key    string
	state  T
	exists bool
}

func NewPersistent[T any](store Store, kind, key string) *Persistent[T] {
	return &Persistent[T]{store: store, kind: kind, key: key}
}

// State returns a pointer to the in-memory value. Changes are durable only
// after Write.
func (p *Persistent[T]) State() *T {
	return &p.state
}

// RecordExists reports whether a record was found by the last Read or
// produced by the last Write.
func (p *Persistent[T]) RecordExists() bool {
	return p.exists
}

func (p *Persistent[T]) Read(ctx context.Context) error {
	payload, ok, err := p.store.Read(ctx, p.kind, p.key)
	if err != nil {
		return p.wrap("read", err)
	}
	var zero T
	p.state = zero
	p.exists = ok
	if !ok {
		return nil
	}
	if err := json.Unmarshal(payload, &p.state); err != nil {
		return fmt.Errorf("%w: decode %s/%s: %v", ErrPersistence, p.kind, p.key, err)
	}
	return nil
}

func (p *Persistent[T]) Write(ctx context.Context) error {
	payload, err := json.Marshal(p.state)
	if err != nil {
		return fmt.Errorf("%w: encode %s/%s: %v", ErrPersistence, p.kind, p.key, err)
	}
	if err := p.store.Write(ctx, p.kind, p.key, payload); err != nil {
		return p.wrap("write", err)
	}
	p.exists = true
	return nil
}

// Clear removes the record and resets the in-memory value.
func (p *Persistent[T]) Clear(ctx context.Context) error {
	if err := p.store.Clear(ctx, p.kind, p.key); err != nil {
		return p.wrap("clear", err)
	}
	var zero T
	p.state = zero
	p.exists = false
	return nil
}

func (p *Persistent[T]) wrap(op string, err error) error {
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s %s/%s: %w", ErrPersistence, op, p.kind, p.key, err)
}
