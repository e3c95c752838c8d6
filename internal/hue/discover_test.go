package hue

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discoveryServer(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestDiscover(t *testing.T) {
	url := discoveryServer(t, http.StatusOK, `[{"id":"001788fffe100491","internalipaddress":"192.168.2.23","port":443},{"id":"b","internalipaddress":"192.168.2.24"}]`)

	bridges, err := Discover(context.Background(), NewHTTPClient(0), url)
	require.NoError(t, err)
	require.Len(t, bridges, 2)
	assert.Equal(t, DiscoveredBridge{ID: "001788fffe100491", InternalIPAddress: "192.168.2.23", Port: 443}, bridges[0])
	assert.Equal(t, "192.168.2.24", bridges[1].InternalIPAddress)
}

func TestDiscover_NonOK(t *testing.T) {
	url := discoveryServer(t, http.StatusTooManyRequests, `slow down`)

	_, err := Discover(context.Background(), NewHTTPClient(0), url)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
}

func TestDiscover_Malformed(t *testing.T) {
	url := discoveryServer(t, http.StatusOK, `{"bridges":[]}`)

	_, err := Discover(context.Background(), NewHTTPClient(0), url)
	assert.Error(t, err)
}
