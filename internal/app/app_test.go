package app

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/huectl/internal/config"
	"github.com/dokzlo13/huectl/internal/store"
)

type statePut struct {
	Address int
	Body    string
}

// fakeBridge is an in-process stand-in for a bridge's v1 API.
type fakeBridge struct {
	mu sync.Mutex

	pingStatus   int
	pairBody     string
	lightsStatus int
	lightsBody   string
	stateBody    string

	pairRequests []string
	puts         []statePut
}

func newFakeBridge(t *testing.T) (*fakeBridge, string) {
	t.Helper()

	b := &fakeBridge{
		pingStatus:   http.StatusOK,
		pairBody:     `[{"success":{"username":"issued-user"}}]`,
		lightsStatus: http.StatusOK,
		lightsBody:   `{}`,
		stateBody:    `[{"success":{}}]`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		w.WriteHeader(b.pingStatus)
		_, _ = io.WriteString(w, `[{"error":{"type":4,"address":"/","description":"method, GET, not available for resource, /"}}]`)
	})
	mux.HandleFunc("POST /api", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.pairRequests = append(b.pairRequests, string(data))
		_, _ = io.WriteString(w, b.pairBody)
	})
	mux.HandleFunc("GET /api/{user}/lights", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		w.WriteHeader(b.lightsStatus)
		_, _ = io.WriteString(w, b.lightsBody)
	})
	mux.HandleFunc("PUT /api/{user}/lights/{addr}/state", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		addr, err := strconv.Atoi(r.PathValue("addr"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.puts = append(b.puts, statePut{Address: addr, Body: string(data)})
		_, _ = io.WriteString(w, b.stateBody)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return b, strings.TrimPrefix(srv.URL, "http://")
}

func (b *fakeBridge) set(fn func(b *fakeBridge)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func (b *fakeBridge) statePuts() []statePut {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]statePut(nil), b.puts...)
}

func (b *fakeBridge) pairs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.pairRequests...)
}

type testEnv struct {
	app       *App
	out       *bytes.Buffer
	store     *store.File
	statePath string
}

func newTestEnv(t *testing.T, settings *config.Config, input string) *testEnv {
	t.Helper()

	if settings == nil {
		settings = config.Default()
	}
	statePath := filepath.Join(t.TempDir(), "config.json")
	st := store.NewFile(statePath)
	out := &bytes.Buffer{}

	a := New(settings, st,
		WithOutput(out),
		WithInput(strings.NewReader(input)),
		WithHostname(func() (string, error) { return "testhost", nil }),
	)
	return &testEnv{app: a, out: out, store: st, statePath: statePath}
}

// seed persists cfg and returns it as loaded back from disk.
func (e *testEnv) seed(t *testing.T, cfg store.Config) store.Config {
	t.Helper()
	require.NoError(t, e.store.Save(cfg))
	loaded, err := e.app.LoadConfig()
	require.NoError(t, err)
	return loaded
}

func (e *testEnv) rawState(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.statePath)
	require.NoError(t, err)
	return string(data)
}

func (e *testEnv) lines() []string {
	text := strings.TrimRight(e.out.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
