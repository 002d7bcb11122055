package domain

import "errors"

var (
	// ErrArenaNotInitialized is returned when an operation needs arena state
	// that has not been created yet.
	ErrArenaNotInitialized = errors.New("arena: not initialized")
	// ErrQuotaExceeded is returned by the player actor when the player has
	// reached their bot deployment limit.
	ErrQuotaExceeded = errors.New("player: bot deployment limit reached")
	// ErrBotNotFound is returned when a bot actor has no state.
	ErrBotNotFound = errors.New("bot: not found")
	// ErrBotAlreadyExists is returned when a bot id is reused.
	ErrBotAlreadyExists = errors.New("bot: already exists")
)
