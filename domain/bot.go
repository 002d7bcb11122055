package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Move is the last action a bot performed.
type Move uint8

const (
	MoveIdle Move = iota
	MoveWalkForward
	MoveTurnLeft
	MoveTurnRight
	MoveTurnAround
	MoveMeleeAttack
	MoveRangedAttack
	MoveSelfDestruct
	MoveTeleport
	MoveDied
)

var moveNames = [...]string{
	MoveIdle:         "idle",
	MoveWalkForward:  "walk_forward",
	MoveTurnLeft:     "turn_left",
	MoveTurnRight:    "turn_right",
	MoveTurnAround:   "turn_around",
	MoveMeleeAttack:  "melee_attack",
	MoveRangedAttack: "ranged_attack",
	MoveSelfDestruct: "self_destruct",
	MoveTeleport:     "teleport",
	MoveDied:         "died",
}

func (m Move) String() string {
	if int(m) < len(moveNames) {
		return moveNames[m]
	}
	return fmt.Sprintf("unknown(%d)", m)
}

func (m Move) MarshalText() ([]byte, error) {
	if int(m) >= len(moveNames) {
		return nil, fmt.Errorf("domain: invalid move %d", m)
	}
	return []byte(moveNames[m]), nil
}

func (m *Move) UnmarshalText(text []byte) error {
	for i, name := range moveNames {
		if name == string(text) {
			*m = Move(i)
			return nil
		}
	}
	return fmt.Errorf("domain: unknown move %q", text)
}

// Orientation is the direction a bot is facing.
type Orientation uint8

const (
	North Orientation = iota
	East
	South
	West
)

var orientationNames = [...]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
}

func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return fmt.Sprintf("unknown(%d)", o)
}

func (o Orientation) MarshalText() ([]byte, error) {
	if int(o) >= len(orientationNames) {
		return nil, fmt.Errorf("domain: invalid orientation %d", o)
	}
	return []byte(orientationNames[o]), nil
}

func (o *Orientation) UnmarshalText(text []byte) error {
	for i, name := range orientationNames {
		if name == string(text) {
			*o = Orientation(i)
			return nil
		}
	}
	return fmt.Errorf("domain: unknown orientation %q", text)
}

// Bot is the descriptor a bot actor reports about itself.
type Bot struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	PlayerName     string      `json:"playerName"`
	ArenaName      string      `json:"arenaName"`
	X              int         `json:"x"`
	Y              int         `json:"y"`
	Orientation    Orientation `json:"orientation"`
	MaximumHealth  int         `json:"maximumHealth"`
	CurrentHealth  int         `json:"currentHealth"`
	MaximumStamina int         `json:"maximumStamina"`
	CurrentStamina int         `json:"currentStamina"`
	Move           Move        `json:"move"`
}

// Died reports whether the bot's last known move is MoveDied.
func (b Bot) Died() bool {
	return b.Move == MoveDied
}

// BotToCreate is the request to materialize a new bot.
//
// Arena is filled in by the arena actor before the bot actor sees it, so the
// bot can place itself without calling back into the arena.
type BotToCreate struct {
	Name           string `json:"name"`
	PlayerName     string `json:"playerName,omitempty"`
	MaximumHealth  int    `json:"maximumHealth"`
	MaximumStamina int    `json:"maximumStamina"`
	Script         string `json:"script,omitempty"`
	Arena          Arena  `json:"-"`
}
