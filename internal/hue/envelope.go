package hue

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorTypeDeviceOff is the bridge's error type for a parameter that cannot be
// modified while the light is off.
const ErrorTypeDeviceOff = 201

// ErrUnexpectedResponse is returned when a body matches neither the success nor the
// error envelope.
var ErrUnexpectedResponse = errors.New("unexpected response from hue bridge")

// APIError is the payload of an error envelope.
type APIError struct {
	Type        int    `json:"type"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hue bridge error %d (%s): %s", e.Type, e.Address, e.Description)
}

// StatusError reports a non-200 answer to a GET.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s from %s", e.Status(), e.URL)
}

// Status renders the code the way net/http does, e.g. "404 Not Found".
func (e *StatusError) Status() string {
	return fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
}

// Response is the decoded form of a mutating call's answer.
// Exactly one of Success and Error is set.
type Response[T any] struct {
	Success *T
	Error   *APIError
}

type envelope struct {
	Success json.RawMessage `json:"success"`
	Error   *APIError       `json:"error"`
}

// DecodeResponse decodes a bridge answer of the form [{"success": T}, ...] or
// [{"error": {...}}, ...]. The variant is picked by which key is present.
// If any entry is an error the first error wins; the success payload is taken
// from the first entry.
func DecodeResponse[T any](body []byte) (Response[T], error) {
	var entries []envelope
	if err := json.Unmarshal(body, &entries); err != nil {
		return Response[T]{}, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if len(entries) == 0 {
		return Response[T]{}, fmt.Errorf("%w: empty result list", ErrUnexpectedResponse)
	}

	for _, e := range entries {
		if e.Error != nil {
			return Response[T]{Error: e.Error}, nil
		}
	}

	for _, e := range entries {
		if len(e.Success) == 0 || string(e.Success) == "null" {
			return Response[T]{}, fmt.Errorf("%w: entry without success or error", ErrUnexpectedResponse)
		}
	}

	var payload T
	if err := json.Unmarshal(entries[0].Success, &payload); err != nil {
		return Response[T]{}, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return Response[T]{Success: &payload}, nil
}
