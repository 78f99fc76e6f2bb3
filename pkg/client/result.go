package client

import "fmt"

// APIError is the backend's `{error}` payload plus the HTTP status it
// arrived with. A zero status means the request never reached the server.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Result is the tagged outcome of an API call. Callers check Ok instead
// of probing response shapes: exactly one of Value or Err is meaningful.
type Result[T any] struct {
	Ok    bool
	Value T
	Err   *APIError
}

func ok[T any](v T) Result[T] {
	return Result[T]{Ok: true, Value: v}
}

func fail[T any](err *APIError) Result[T] {
	return Result[T]{Err: err}
}
