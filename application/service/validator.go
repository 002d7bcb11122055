package service

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"botarena/application/request"
	"botarena/domain"
)

const (
	maxNameLength = 64
	maxScriptSize = 64 * 1024
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// SimpleValidator は最低限の入力検証を提供するデフォルト実装。
type SimpleValidator struct{}

func (SimpleValidator) Arena(req request.Arena) error {
	return validName("arena", req.Arena)
}

func (SimpleValidator) CreateBot(req request.CreateBot) error {
	if err := validName("arena", req.Arena); err != nil {
		return err
	}
	if err := validName("player", req.Player); err != nil {
		return err
	}
	return validBot(req.Bot)
}

func (SimpleValidator) UnlistBot(req request.UnlistBot) error {
	if err := validName("arena", req.Arena); err != nil {
		return err
	}
	return validID(req.BotID)
}

func (SimpleValidator) DeleteBot(req request.DeleteBot) error {
	return validID(req.BotID)
}

func (SimpleValidator) Player(req request.Player) error {
	return validName("player", req.Player)
}

func validName(field, name string) error {
	if name == "" {
		return fmt.Errorf("%s name is required", field)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%s name is longer than %d characters", field, maxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%s name %q contains invalid characters", field, name)
	}
	return nil
}

func validID(id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("bot id is required")
	}
	return nil
}

func validBot(spec domain.BotToCreate) error {
	if spec.Name == "" {
		return errors.New("bot name is required")
	}
	if len(spec.Name) > maxNameLength {
		return fmt.Errorf("bot name is longer than %d characters", maxNameLength)
	}
	if spec.MaximumHealth <= 0 {
		return errors.New("maximum health must be positive")
	}
	if spec.MaximumStamina <= 0 {
		return errors.New("maximum stamina must be positive")
	}
	if len(spec.Script) > maxScriptSize {
		return fmt.Errorf("script is larger than %d bytes", maxScriptSize)
	}
	return nil
}
