package ballchasing

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey: sin key ballchasing contesta 401 a todo.
var ErrMissingAPIKey = errors.New("ballchasing: api key vacía")

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ballchasing status %d: %s", e.Status, e.Body)
}
