package app

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/huectl/internal/hue"
	"github.com/dokzlo13/huectl/internal/store"
)

// Resolve maps an alias to its light name. Anything that is not an alias is
// taken to be a light name already.
func Resolve(cfg store.Config, name string) string {
	if target, ok := cfg.Aliases[name]; ok {
		return target
	}
	return name
}

// SetAlias makes alias refer to the light called name. Existing aliases are never
// overwritten and name must be a light the bridge currently reports.
func (a *App) SetAlias(ctx context.Context, cfg store.Config, name, alias string) (store.Config, error) {
	if _, exists := cfg.Aliases[alias]; exists {
		return cfg, failf("Alias %s has already been set", alias)
	}

	lights, err := a.Lights(ctx, cfg)
	if err != nil {
		return cfg, err
	}
	if !slices.ContainsFunc(lights, func(l hue.Light) bool { return l.Name == name }) {
		return cfg, failf("Invalid light name: %s", name)
	}

	next := cfg.WithAlias(alias, name)
	if err := a.store.Save(next); err != nil {
		return cfg, err
	}

	log.Info().Str("alias", alias).Str("light", name).Msg("Alias saved")
	a.printf("Alias %s now refers to %s", alias, name)
	return next, nil
}

// Aliases prints every alias sorted by alias name.
func (a *App) Aliases(cfg store.Config) {
	keys := make([]string, 0, len(cfg.Aliases))
	for alias := range cfg.Aliases {
		keys = append(keys, alias)
	}
	slices.Sort(keys)

	for _, alias := range keys {
		a.printf("%s -> %s", alias, cfg.Aliases[alias])
	}
}
