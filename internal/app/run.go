package app

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-web-skeleton/internal/server"
)

// Run serves the application until ctx is cancelled or a stop signal arrives,
// then releases the extensions.
func (a *App) Run(ctx context.Context) error {
	srv, err := server.NewServer(a, a.Config.Server, a.Logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	defer func() {
		if err := a.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("error releasing extensions")
		}
	}()

	return srv.RunServer(ctx)
}
