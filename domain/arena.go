package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Arena describes a named arena and its fixed dimensions.
type Arena struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ArenaState is the durable state owned by one arena actor.
//
// BotIDs is nil until the arena has been initialized. Once Exists is true the
// roster is non-nil (possibly empty) and Name, Width and Height never change.
type ArenaState struct {
	Exists bool        `json:"exists"`
	Name   string      `json:"name,omitempty"`
	Width  int         `json:"width,omitempty"`
	Height int         `json:"height,omitempty"`
	BotIDs []uuid.UUID `json:"botIds"`
}

// Details returns the public descriptor of the arena.
func (s ArenaState) Details() Arena {
	return Arena{Name: s.Name, Width: s.Width, Height: s.Height}
}

// Initialized reports whether the roster can be mutated.
func (s ArenaState) Initialized() bool {
	return s.Exists && s.BotIDs != nil
}

// HasBot reports whether id is on the roster.
func (s ArenaState) HasBot(id uuid.UUID) bool {
	return slices.Contains(s.BotIDs, id)
}

// AddBot appends id to the roster unless it is already present.
func (s *ArenaState) AddBot(id uuid.UUID) bool {
	if s.HasBot(id) {
		return false
	}
	s.BotIDs = append(s.BotIDs, id)
	return true
}

// RemoveBot drops id from the roster, keeping the order of the others.
func (s *ArenaState) RemoveBot(id uuid.UUID) bool {
	i := slices.Index(s.BotIDs, id)
	if i < 0 {
		return false
	}
	s.BotIDs = slices.Delete(s.BotIDs, i, i+1)
	return true
}
