package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"botarena/application/service"
	"botarena/domain"
)

const maxBodyBytes = 128 << 10

const botSchemaURL = "botarena://schema/bot-to-create.json"

const botSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "required": ["name", "maximumHealth", "maximumStamina"],
  "properties": {
    "name":           {"type": "string", "minLength": 1, "maxLength": 64},
    "maximumHealth":  {"type": "integer", "minimum": 1},
    "maximumStamina": {"type": "integer", "minimum": 1},
    "script":         {"type": "string", "maxLength": 65536}
  }
}`

// BotSchema validates the body of a bot creation request.
type BotSchema struct {
	schema *jsonschema.Schema
}

func NewBotSchema() (*BotSchema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(botSchemaURL, strings.NewReader(botSchema)); err != nil {
		return nil, err
	}
	s, err := c.Compile(botSchemaURL)
	if err != nil {
		return nil, err
	}
	return &BotSchema{schema: s}, nil
}

// Decode reads, validates and decodes a BotToCreate. Every failure wraps
// service.ErrInvalidPayload.
func (s *BotSchema) Decode(r io.Reader) (domain.BotToCreate, error) {
	var spec domain.BotToCreate
	body, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return spec, fmt.Errorf("%w: %w", service.ErrInvalidPayload, err)
	}
	if len(body) > maxBodyBytes {
		return spec, fmt.Errorf("%w: body exceeds %d bytes", service.ErrInvalidPayload, maxBodyBytes)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return spec, fmt.Errorf("%w: %w", service.ErrInvalidPayload, err)
	}
	if err := s.schema.Validate(doc); err != nil {
		return spec, fmt.Errorf("%w: %w", service.ErrInvalidPayload, err)
	}
	if err := json.Unmarshal(body, &spec); err != nil {
		return spec, fmt.Errorf("%w: %w", service.ErrInvalidPayload, err)
	}
	return spec, nil
}
