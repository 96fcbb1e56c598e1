package bootstrap

import (
	"context"
	"io"
	"log/slog"
)

// Stopper is the part of the HTTP server needed for shutdown.
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server  Stopper
	DBPool  interface{ Close() }
	Redis   io.Closer
	LogFile io.Closer
}

// GracefulShutdown stops the HTTP server first so in-flight openings finish,
// then releases the stores. The log file is closed last. Errors are logged
// and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Redis != nil {
		closeComponent(ComponentRedis, components.Redis)
	}

	if components.DBPool != nil {
		components.DBPool.Close()
		slog.Info(LogMsgComponentClosed, "component", ComponentDatabase)
	}

	slog.Info(LogMsgServerExited)

	if components.LogFile != nil {
		closeComponent(ComponentLogFile, components.LogFile)
	}
}

func closeComponent(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Error(LogMsgComponentCloseFailed, "component", name, "error", err)
		return
	}
	slog.Info(LogMsgComponentClosed, "component", name)
}
