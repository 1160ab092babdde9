package fx

import (
	"context"
	"net"
	"net/http"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/amityadav/scout/internal/server"
)

// ServerModule provides the HTTP server and binds it to the fx lifecycle
var ServerModule = fx.Module("server",
	fx.Provide(server.New),
	fx.Invoke(StartServer),
)

// ServerParams groups dependencies for starting the server
type ServerParams struct {
	fx.In
	Lifecycle fx.Lifecycle
	Server    *server.Server
	Log       zerolog.Logger
}

// StartServer starts the HTTP server with lifecycle management.
func StartServer(p ServerParams) {
	httpServer := &http.Server{
		Addr:    p.Server.Addr(),
		Handler: p.Server.Handler(),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", httpServer.Addr)
			if err != nil {
				return err
			}

			go func() {
				p.Log.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
				if err := httpServer.Serve(lis); err != nil && err != http.ErrServerClosed {
					p.Log.Error().Err(err).Msg("HTTP server error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Log.Info().Msg("shutting down HTTP server")
			return httpServer.Shutdown(ctx)
		},
	})
}
