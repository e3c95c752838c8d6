package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/huectl/internal/hue"
	"github.com/dokzlo13/huectl/internal/store"
)

// DeviceType builds the identifier the bridge stores next to the issued username.
func (a *App) DeviceType() (string, error) {
	host, err := a.hostname()
	if err != nil {
		return "", fmt.Errorf("failed to determine hostname: %w", err)
	}
	return fmt.Sprintf("%s#%s", a.cfg.ApplicationName, host), nil
}

// Login pairs with the bridge. The operator has to press the bridge's link button
// and confirm on the console before the request is sent; there is no retry.
func (a *App) Login(ctx context.Context, cfg store.Config) (store.Config, error) {
	deviceType, err := a.DeviceType()
	if err != nil {
		return store.Config{}, err
	}

	a.printf("%s", deviceType)
	a.printf("Press the link button on the hue bridge, then press any button to continue")

	// The line read only paces the operator.
	if _, err := a.in.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return store.Config{}, fmt.Errorf("failed to read confirmation: %w", err)
	}

	client := a.client(cfg)
	username, err := client.CreateUser(ctx, deviceType)
	if err != nil {
		var apiErr *hue.APIError
		if errors.As(err, &apiErr) {
			return store.Config{}, &Failure{
				Msg: "Unable to login to the philips hue bridge for the following reason: " + apiErr.Description,
				Err: err,
			}
		}
		return store.Config{}, err
	}

	next := store.Config{
		URL:      cfg.URL,
		Username: username,
		Aliases:  cfg.Aliases,
	}
	if err := a.store.Save(next); err != nil {
		return store.Config{}, err
	}

	log.Info().Str("bridge", cfg.URL).Str("devicetype", deviceType).Msg("Paired with bridge")
	a.printf("Paired with the hue bridge at %s", cfg.URL)
	return next, nil
}
