package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/huectl/internal/hue"
	"github.com/dokzlo13/huectl/internal/store"
)

// Lights fetches every light in bridge order.
//
// A non-200 answer prints a diagnostic and yields an empty list with a nil error, so
// callers see "bridge unreachable" and "no lights" alike. Transport and parse
// failures are returned as errors.
func (a *App) Lights(ctx context.Context, cfg store.Config) ([]hue.Light, error) {
	lights, err := a.client(cfg).Lights(ctx)
	if err != nil {
		var statusErr *hue.StatusError
		if errors.As(err, &statusErr) {
			a.printf("Failed to contact %s. Status code: %s", statusErr.URL, statusErr.Status())
			log.Debug().Err(err).Msg("Treating failed light listing as empty")
			return nil, nil
		}
		return nil, err
	}
	return lights, nil
}

// List prints one "<name>: ON|OFF" line per light.
func (a *App) List(ctx context.Context, cfg store.Config) error {
	lights, err := a.Lights(ctx, cfg)
	if err != nil {
		return err
	}

	for _, light := range lights {
		if light.State.On {
			a.printf("%s: ON", light.Name)
		} else {
			a.printf("%s: OFF", light.Name)
		}
	}
	return nil
}
