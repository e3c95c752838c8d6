package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/huectl/internal/hue"
	"github.com/dokzlo13/huectl/internal/store"
)

// StateChange is one change applied to a light: Power or Brightness.
type StateChange interface {
	update() hue.StateUpdate
	describe() string
}

// Power switches a light on or off.
type Power bool

func (p Power) update() hue.StateUpdate {
	on := bool(p)
	return hue.StateUpdate{On: &on}
}

func (p Power) describe() string {
	if p {
		return "Turned on"
	}
	return "Turned off"
}

// Brightness is a percentage in 0..100.
type Brightness uint8

// ParseBrightness validates a percentage given on the command line.
func ParseBrightness(s string) (Brightness, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid brightness %q: expected a whole number", s)
	}
	if v > 100 {
		return 0, errors.New("brightness value not between 0 and 100")
	}
	return Brightness(v), nil
}

// BridgeValue rescales the percentage to the bridge's 0..255 range, rounding down.
func (b Brightness) BridgeValue() uint8 {
	return uint8(uint(b) * 255 / 100)
}

func (b Brightness) update() hue.StateUpdate {
	bri := b.BridgeValue()
	return hue.StateUpdate{Bri: &bri}
}

func (b Brightness) describe() string {
	return fmt.Sprintf("Set brightness to %d for", uint8(b))
}

// SetState applies change to the light called name (or aliased as name).
//
// The light is addressed by its 1-based position in the bridge's light listing, not
// by the key the bridge listed it under. The two agree as long as the bridge lists
// its lights in ascending id order with no gaps.
func (a *App) SetState(ctx context.Context, cfg store.Config, change StateChange, name string) error {
	update := change.update()
	name = Resolve(cfg, name)

	lights, err := a.Lights(ctx, cfg)
	if err != nil {
		return err
	}

	index := slices.IndexFunc(lights, func(l hue.Light) bool { return l.Name == name })
	if index < 0 {
		return failf("Invalid light name %s", name)
	}
	address := index + 1

	log.Debug().
		Str("light", name).
		Int("address", address).
		Str("bridge_id", lights[index].ID).
		Msg("Setting light state")

	err = a.client(cfg).SetLightState(ctx, address, update)
	if err != nil {
		var apiErr *hue.APIError
		if !errors.As(err, &apiErr) {
			return err
		}
		if apiErr.Type == hue.ErrorTypeDeviceOff {
			return &Failure{Msg: "Cannot set value on a light that is not turned on", Err: err}
		}
		return &Failure{
			Msg: "Something went wrong when setting a state on the light: " + apiErr.Description,
			Err: err,
		}
	}

	a.printf("%s %s successfully", change.describe(), name)
	return nil
}
