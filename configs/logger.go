package configs

import (
	"strings"

	"greenhouse-server/pkg/logger"

	"go.uber.org/zap"
)

// Logger is the process-wide zap logger, set by InitLogger.
var Logger *zap.Logger

// InitLogger builds the global logger from the logs section of the config.
func InitLogger() {
	logConfig := logger.Config{
		Level:  strings.ToLower(Configs.Logs.LogLevel),
		Format: "json",
	}

	if Configs.Logs.StdoutOnly {
		logConfig.Output = "stdout"
	} else {
		logConfig.Output = "file"
		logConfig.FilePath = Configs.Logs.LogPath
	}

	log, err := logger.NewZapLogger(logConfig)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	Logger = log
}
