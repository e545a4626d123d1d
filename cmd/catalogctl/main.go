package main

import (
	"os"

	"interiorhub-web/config"
	"interiorhub-web/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.Env, cfg.LogLevel)

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
