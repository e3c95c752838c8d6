package hue

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/amimof/huego"
)

// decodeLights parses the {"<id>": {...}, ...} lights object.
//
// Lights are returned in document order. Callers derive the bridge address from the
// position in this slice, so decoding into a Go map (randomized iteration) would make
// addressing nondeterministic. Sorting keys as strings ("1", "10", "2") would address
// differently once a bridge has ten or more lights; document order is kept instead.
func decodeLights(body []byte) ([]Light, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		// The bridge answers 200 with an error envelope, e.g. for an unknown username.
		result, err := DecodeResponse[json.RawMessage](trimmed)
		if err != nil {
			return nil, err
		}
		if result.Error != nil {
			return nil, result.Error
		}
		return nil, fmt.Errorf("%w: lights listing is an array", ErrUnexpectedResponse)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse lights: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("failed to parse lights: expected object, got %v", tok)
	}

	lights := []Light{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse lights: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("failed to parse lights: unexpected key %v", tok)
		}

		var record huego.Light
		if err := dec.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to parse light %s: %w", id, err)
		}

		light := Light{ID: id, Name: record.Name}
		if record.State != nil {
			light.State = *record.State
		}
		lights = append(lights, light)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse lights: %w", err)
	}

	return lights, nil
}
