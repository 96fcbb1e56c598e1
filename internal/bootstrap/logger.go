package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Fukolomka/Sitea/internal/config"
	"github.com/Fukolomka/Sitea/internal/logger"
)

// SetupLogger initializes the default slog logger writing to stdout and a
// size-rotated file under LOG_DIR. The returned closer flushes the file.
func SetupLogger(cfg *config.Config) (io.Closer, error) {
	if err := os.MkdirAll(cfg.Log.Dir, DirPermission); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateLogsDir, err)
	}

	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Log.Dir, LogFileName),
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxFiles,
		MaxAge:     cfg.Log.MaxAgeDay,
		LocalTime:  true,
	}

	setupLoggerWithWriter(cfg, io.MultiWriter(os.Stdout, rotating))
	return rotating, nil
}

func setupLoggerWithWriter(cfg *config.Config, w io.Writer) {
	logger.InitLoggerWithWriter(logger.NewConfig(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.App.Name,
		cfg.App.Version,
		cfg.App.Environment,
		!cfg.IsProduction(),
	), w)

	slog.Info(LogMsgLoggingInitialized, "level", cfg.Log.Level, "format", cfg.Log.Format)
	slog.Info(LogMsgStarting,
		"environment", cfg.App.Environment,
		"version", cfg.App.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.Database.Host,
		"db_port", cfg.Database.Port,
		"db_name", cfg.Database.Name,
		"port", cfg.Server.Port,
		"cache", cfg.Cache.Type)
}
