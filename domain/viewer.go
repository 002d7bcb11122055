package domain

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IdleReason は購読が閉じられた理由のビット集合です。
type IdleReason uint8

const (
	IdleNone     IdleReason = 0
	IdlePush     IdleReason = 1 << 0
	IdlePong     IdleReason = 1 << 1
	IdleDisabled IdleReason = 1 << 7
)

var idleReasonNames = []struct {
	bit  IdleReason
	name string
}{
	{IdlePush, "push"},
	{IdlePong, "pong"},
}

func (r IdleReason) Has(x IdleReason) bool { return r&x != 0 }

func (r IdleReason) String() string {
	switch r {
	case IdleNone:
		return "none"
	case IdleDisabled:
		return "disabled"
	}
	var parts []string
	for _, n := range idleReasonNames {
		if r.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("unknown(%d)", r)
	}
	return strings.Join(parts, "|")
}

// Viewer はアリーナのボット一覧を購読している1接続の状態を表す構造体です。
type Viewer struct {
	ID    uuid.UUID
	Arena string

	now func() time.Time

	// activity
	lastPush atomic.Int64
	lastPong atomic.Int64

	// lifecycle
	closed      atomic.Bool
	closeReason atomic.Uint32
}

func NewViewer(arena string) *Viewer {
	return NewViewerWithClock(arena, time.Now)
}

func NewViewerWithClock(arena string, now func() time.Time) *Viewer {
	v := &Viewer{
		ID:    uuid.New(),
		Arena: arena,
		now:   now,
	}
	t := now().UnixNano()
	v.lastPush.Store(t)
	v.lastPong.Store(t)
	return v
}

func (v *Viewer) TouchPush() {
	v.lastPush.Store(v.now().UnixNano())
}

func (v *Viewer) TouchPong() {
	v.lastPong.Store(v.now().UnixNano())
}

// Close は最初の呼び出しだけが true を返し、理由を記録します。
func (v *Viewer) Close(reason IdleReason) bool {
	if v.closed.CompareAndSwap(false, true) {
		v.closeReason.Store(uint32(reason))
		return true
	}
	return false
}

func (v *Viewer) CloseReason() IdleReason {
	return IdleReason(v.closeReason.Load())
}

func (v *Viewer) IsClosed() bool {
	return v.closed.Load()
}

func (v *Viewer) IsIdle(timeout time.Duration) (bool, IdleReason) {
	if timeout <= 0 {
		return false, IdleDisabled
	}
	var reason IdleReason
	if v.isIdleSince(v.lastPush.Load(), timeout) {
		reason |= IdlePush
	}
	if v.isIdleSince(v.lastPong.Load(), timeout) {
		reason |= IdlePong
	}
	return reason != IdleNone, reason
}

func (v *Viewer) isIdleSince(nano int64, timeout time.Duration) bool {
	return v.now().Sub(time.Unix(0, nano)) > timeout
}
