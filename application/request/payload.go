package request

import (
	"time"

	"github.com/google/uuid"

	"botarena/domain"
)

// Meta はリクエスト共通のトレーシング情報を保持する。
type Meta struct {
	// RequestID はクライアントから渡された一意な識別子。
	RequestID string
	// OccurredAt はリクエストがサーバーに到着した時刻。
	OccurredAt time.Time
}

// Arena は arena 名だけを対象とするリクエスト。
type Arena struct {
	Meta  Meta
	Arena string
}

// CreateBot は認証済みプレイヤーによるボット作成リクエスト。
type CreateBot struct {
	Meta   Meta
	Arena  string
	Player string
	Bot    domain.BotToCreate
}

// UnlistBot は arena の名簿からボットを外すリクエスト。
type UnlistBot struct {
	Meta  Meta
	Arena string
	BotID uuid.UUID
}

// DeleteBot はボット自身を削除するリクエスト。
type DeleteBot struct {
	Meta  Meta
	BotID uuid.UUID
}

// Player はプレイヤー単位の参照リクエスト。
type Player struct {
	Meta   Meta
	Player string
}
