package app

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/dokzlo13/huectl/internal/config"
	"github.com/dokzlo13/huectl/internal/hue"
	"github.com/dokzlo13/huectl/internal/store"
)

// App runs one bridge operation per invocation.
// Every operation receives the loaded store.Config explicitly; the ones that change it
// persist the new value through the store before returning.
type App struct {
	cfg      *config.Config
	store    *store.File
	out      io.Writer
	in       *bufio.Reader
	hostname func() (string, error)
	limiter  *rate.Limiter
}

// Option customizes an App.
type Option func(*App)

// WithOutput sets where operator-facing text is written (default: stdout).
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithInput sets where the pairing prompt reads from (default: stdin).
func WithInput(r io.Reader) Option {
	return func(a *App) { a.in = bufio.NewReader(r) }
}

// WithHostname overrides the hostname lookup used in the pairing device type.
func WithHostname(fn func() (string, error)) Option {
	return func(a *App) { a.hostname = fn }
}

// New creates an App using settings cfg and the state file st.
func New(cfg *config.Config, st *store.File, opts ...Option) *App {
	a := &App{
		cfg:      cfg,
		store:    st,
		out:      os.Stdout,
		in:       bufio.NewReader(os.Stdin),
		hostname: os.Hostname,
		limiter:  hue.NewLimiter(cfg.Bridge.RateLimitRPS),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadConfig reads the persisted state, creating it on first run.
func (a *App) LoadConfig() (store.Config, error) {
	cfg, err := a.store.Load()
	if err != nil {
		return store.Config{}, err
	}
	log.Debug().
		Str("state_file", a.store.Path()).
		Str("url", cfg.URL).
		Bool("paired", cfg.Username != "").
		Msg("State loaded")
	return cfg, nil
}

// client returns a bridge client for cfg. All clients of one App draw from the same
// request budget.
func (a *App) client(cfg store.Config) *hue.Client {
	return hue.NewClient(cfg.URL, cfg.Username, a.cfg.Bridge.Timeout.Duration(), a.limiter)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}
