package app

import (
	"context"
	"net/http"

	"github.com/dokzlo13/huectl/internal/store"
)

// Test checks that the bridge answers on its API root.
func (a *App) Test(ctx context.Context, cfg store.Config) error {
	client := a.client(cfg)

	code, err := client.Ping(ctx)
	if err != nil {
		return err
	}
	if code != http.StatusOK {
		return failf("Issue connecting to the hue bridge %s", client.BaseURL())
	}

	a.printf("Able to connect to the hue bridge on %s", client.BaseURL())
	return nil
}
