package env

import (
	zap "go.uber.org/zap"
)

func MakeLogger(debug bool) (*zap.Logger, error) {
	logConfig := zap.NewProductionConfig()

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	logConfig.Level = zap.NewAtomicLevelAt(level)
	logConfig.Encoding = "json"

	return logConfig.Build()
}
