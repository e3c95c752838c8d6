package hue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Client talks to a single Hue bridge over the v1 API (plain HTTP).
type Client struct {
	address    string
	username   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewLimiter paces bridge requests at rps requests per second.
// Clients that share one limiter share its budget.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		rps = 10.0
	}
	return rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
}

// NewClient creates a new Hue client.
// A zero timeout leaves the http.Client default (no timeout) in place.
// A nil limiter gets a private one at the default rate.
func NewClient(address, username string, timeout time.Duration, limiter *rate.Limiter) *Client {
	if limiter == nil {
		limiter = NewLimiter(0)
	}

	return &Client{
		address:    address,
		username:   username,
		httpClient: NewHTTPClient(timeout),
		limiter:    limiter,
	}
}

// NewHTTPClient returns the http.Client used for bridge and discovery calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Address returns the bridge address
func (c *Client) Address() string {
	return c.address
}

// BaseURL is the root of the v1 API, used unauthenticated for pairing and the connection test.
func (c *Client) BaseURL() string {
	return fmt.Sprintf("http://%s/api", c.address)
}

// LightsURL is the inventory endpoint for the paired user.
func (c *Client) LightsURL() string {
	return c.v1URL("lights")
}

func (c *Client) v1URL(path string) string {
	return fmt.Sprintf("http://%s/api/%s/%s", c.address, c.username, path)
}

func (c *Client) request(ctx context.Context, method, url string, body any) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach hue bridge at %s: %w", c.address, err)
	}

	log.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Msg("Bridge request")
	return resp, nil
}

// Ping issues GET /api and returns the HTTP status code.
func (c *Client) Ping(ctx context.Context) (int, error) {
	resp, err := c.request(ctx, http.MethodGet, c.BaseURL(), nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// CreateUser registers deviceType with the bridge and returns the issued username.
// The bridge only accepts the request shortly after its link button was pressed;
// otherwise the returned error is an *APIError.
func (c *Client) CreateUser(ctx context.Context, deviceType string) (string, error) {
	resp, err := c.request(ctx, http.MethodPost, c.BaseURL(), createUserRequest{DeviceType: deviceType})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read pairing response: %w", err)
	}

	result, err := DecodeResponse[createUserSuccess](body)
	if err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", result.Error
	}
	if result.Success.Username == "" {
		return "", fmt.Errorf("%w: no username in pairing response", ErrUnexpectedResponse)
	}

	return result.Success.Username, nil
}

// Lights returns every light known to the bridge in the order the bridge lists them.
// A non-200 answer yields a *StatusError.
func (c *Client) Lights(ctx context.Context) ([]Light, error) {
	url := c.LightsURL()
	resp, err := c.request(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read lights: %w", err)
	}

	lights, err := decodeLights(body)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("lights", len(lights)).Msg("Lights fetched")
	return lights, nil
}

// SetLightState sends update to the light at the given 1-based address.
// A bridge-side rejection is returned as an *APIError.
func (c *Client) SetLightState(ctx context.Context, address int, update StateUpdate) error {
	resp, err := c.request(ctx, http.MethodPut, c.v1URL(fmt.Sprintf("lights/%d/state", address)), update)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read state response: %w", err)
	}

	result, err := DecodeResponse[map[string]any](body)
	if err != nil {
		return err
	}
	if result.Error != nil {
		return result.Error
	}

	return nil
}
