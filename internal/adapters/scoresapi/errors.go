package scoresapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scores api status %d: %s", e.Status, e.Body)
}

// HasJSONBody: el backend respondió (con error) pero con un objeto JSON legible.
func (e *APIError) HasJSONBody() bool {
	b := strings.TrimSpace(e.Body)
	return strings.HasPrefix(b, "{") && json.Valid([]byte(b))
}
