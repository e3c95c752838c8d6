package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/huectl/internal/hue"
	"github.com/dokzlo13/huectl/internal/store"
)

// Discover looks the bridge up through the discovery service and points the state at
// the first bridge listed. The username and aliases are reset: the bridge found may not
// be the one previously paired with.
func (a *App) Discover(ctx context.Context) (store.Config, error) {
	url := a.cfg.Discovery.URL

	bridges, err := hue.Discover(ctx, hue.NewHTTPClient(a.cfg.Bridge.Timeout.Duration()), url)
	if err != nil {
		var statusErr *hue.StatusError
		if errors.As(err, &statusErr) {
			return store.Config{}, &Failure{
				Msg: "Failed to contact " + url + ". Status code: " + statusErr.Status(),
				Err: err,
			}
		}
		return store.Config{}, err
	}
	if len(bridges) == 0 {
		return store.Config{}, ErrNoBridges
	}
	if len(bridges) > 1 {
		log.Debug().Int("bridges", len(bridges)).Msg("Several bridges discovered, using the first")
	}

	ip := bridges[0].InternalIPAddress
	a.printf("Hue bridge is located at %s", ip)

	cfg := store.Default()
	cfg.URL = ip
	if err := a.store.Save(cfg); err != nil {
		return store.Config{}, err
	}

	log.Info().Str("bridge", ip).Str("id", bridges[0].ID).Msg("Bridge discovered")
	return cfg, nil
}
