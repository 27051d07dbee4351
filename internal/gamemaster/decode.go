package gamemaster

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"adventurego/internal/models"
)

// ErrDecode marks a model reply that did not parse into the scene contract.
var ErrDecode = errors.New("malformed scene reply")

// stripFences removes a surrounding markdown code fence. Models wrap their
// JSON in fenced blocks despite the system prompt forbidding it.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		}
		if strings.HasSuffix(text, "```") {
			text = text[:len(text)-3]
		}
		text = strings.TrimSpace(text)
	}
	return text
}

// decodeModelScene parses a complete model reply into a ModelScene. Field
// matching is case-insensitive; description and actions are required. Action
// count is not validated here, that is the prompt's contract with the model.
func decodeModelScene(raw string) (*models.ModelScene, error) {
	text := stripFences(raw)

	var scene models.ModelScene
	if err := json.Unmarshal([]byte(text), &scene); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if scene.Description == "" {
		return nil, fmt.Errorf("%w: missing description", ErrDecode)
	}
	if scene.Actions == nil {
		return nil, fmt.Errorf("%w: missing actions", ErrDecode)
	}
	return &scene, nil
}
