package hue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Discover asks the discovery endpoint at url for the bridges registered from the
// caller's network. A non-200 answer yields a *StatusError.
func Discover(ctx context.Context, httpClient *http.Client, url string) ([]DiscoveredBridge, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach discovery service: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("Discovery request")

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	var bridges []DiscoveredBridge
	if err := json.NewDecoder(resp.Body).Decode(&bridges); err != nil {
		return nil, fmt.Errorf("failed to parse discovery response: %w", err)
	}

	log.Debug().Int("bridges", len(bridges)).Msg("Discovery finished")
	return bridges, nil
}
