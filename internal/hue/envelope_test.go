package hue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantUser    string
		wantErrType int
		wantDesc    string
		unexpected  bool
	}{
		{
			name:     "success",
			body:     `[{"success":{"username":"83b7780291a6ceffbe0bd049104df"}}]`,
			wantUser: "83b7780291a6ceffbe0bd049104df",
		},
		{
			name:        "link_button_not_pressed",
			body:        `[{"error":{"type":101,"address":"","description":"link button not pressed"}}]`,
			wantErrType: 101,
			wantDesc:    "link button not pressed",
		},
		{
			name:        "error_after_success",
			body:        `[{"success":{"username":"x"}},{"error":{"type":201,"address":"/lights/1/state/bri","description":"parameter, bri, is not modifiable. Device is set to off."}}]`,
			wantErrType: 201,
			wantDesc:    "parameter, bri, is not modifiable. Device is set to off.",
		},
		{name: "empty_array", body: `[]`, unexpected: true},
		{name: "object", body: `{"username":"x"}`, unexpected: true},
		{name: "unknown_key", body: `[{"result":{}}]`, unexpected: true},
		{name: "not_json", body: `<html>`, unexpected: true},
		{name: "wrong_payload_type", body: `[{"success":"nope"}]`, unexpected: true},
		{name: "null_success", body: `[{"success":null}]`, unexpected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DecodeResponse[createUserSuccess]([]byte(tt.body))

			if tt.unexpected {
				assert.True(t, errors.Is(err, ErrUnexpectedResponse), "got %v", err)
				return
			}
			require.NoError(t, err)

			if tt.wantDesc != "" {
				require.NotNil(t, result.Error)
				assert.Nil(t, result.Success)
				assert.Equal(t, tt.wantErrType, result.Error.Type)
				assert.Equal(t, tt.wantDesc, result.Error.Description)
				return
			}

			require.NotNil(t, result.Success)
			assert.Nil(t, result.Error)
			assert.Equal(t, tt.wantUser, result.Success.Username)
		})
	}
}

func TestDecodeResponse_OpaqueSuccess(t *testing.T) {
	result, err := DecodeResponse[map[string]any]([]byte(`[{"success":{"/lights/2/state/on":true}}]`))
	require.NoError(t, err)
	require.NotNil(t, result.Success)
	assert.Equal(t, true, (*result.Success)["/lights/2/state/on"])
}

func TestStatusError(t *testing.T) {
	err := &StatusError{URL: "http://bridge/api/u/lights", Code: 404}
	assert.Equal(t, "404 Not Found", err.Status())
	assert.Contains(t, err.Error(), "http://bridge/api/u/lights")
}
