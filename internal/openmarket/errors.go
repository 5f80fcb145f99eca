// internal/openmarket/errors.go
package openmarket

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrUndecodable = errors.New("response body is not valid JSON")

// APIError is a non-success answer from the API. Body keeps the raw payload so
// callers can pick out the fields they show to the user.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("open-market: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Field returns the string value of a top-level field of the error body. Empty
// strings, null and missing fields all read as "".
func (e *APIError) Field(name string) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Body, &fields); err != nil {
		return ""
	}
	return messageText(fields[name])
}

// TransportError means the request never produced a readable answer: the
// connection failed, the context ended, or the body was not JSON.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("open-market %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// AsAPIError unwraps an API rejection. A rejection whose body was unreadable is
// a transport failure and is not returned here.
func AsAPIError(err error) (*APIError, bool) {
	if IsTransport(err) {
		return nil, false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
