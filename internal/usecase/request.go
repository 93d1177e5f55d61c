package usecase

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xHiades/presidentestic/internal/domain"
)

var errInvalidFieldType = errors.New("usecase: question and systemPrompt must be strings")

// decodeChatRequest parses an inbound body. A blank body, JSON null and
// any non-object JSON value all decode to the zero request; only syntactically
// invalid JSON (or invalid base64) is an error. Unknown fields are ignored.
func decodeChatRequest(raw string, base64Encoded bool) (domain.ChatRequest, error) {
	body := []byte(raw)
	if base64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return domain.ChatRequest{}, fmt.Errorf("usecase: decode base64 body: %w", err)
		}
		body = decoded
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return domain.ChatRequest{}, nil
	}
	if !json.Valid(body) {
		return domain.ChatRequest{}, errors.New("usecase: body is not valid JSON")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		// Valid JSON that is not an object carries no fields.
		return domain.ChatRequest{}, nil
	}

	systemPrompt, err := optionalString(fields["systemPrompt"])
	if err != nil {
		return domain.ChatRequest{}, fmt.Errorf("systemPrompt: %w", err)
	}
	question, err := optionalString(fields["question"])
	if err != nil {
		return domain.ChatRequest{}, fmt.Errorf("question: %w", err)
	}
	return domain.ChatRequest{SystemPrompt: systemPrompt, Question: question}, nil
}

// optionalString accepts an absent field, null or a JSON string.
func optionalString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errInvalidFieldType
	}
	return s, nil
}
