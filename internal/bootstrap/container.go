package bootstrap

import (
	"kommo-tools-be/internal/config"
	"kommo-tools-be/internal/controller"
	"kommo-tools-be/internal/pkg/logger"
	"kommo-tools-be/internal/repository/memory"
	"kommo-tools-be/internal/service"
	"kommo-tools-be/pkg/kommo"
)

type Container struct {
	ToolController controller.IToolController
	Logger         logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Upstream client and instance-local cache
	kommoClient := kommo.NewClient(cfg.Kommo.BaseURL, cfg.Kommo.AccessToken, sysLogger)
	catalogCache := memory.NewCatalogCache()

	// 3. Tool registry (the tool set depends on the auth mode)
	registry := service.NewToolRegistry(
		kommoClient,
		catalogCache,
		sysLogger,
		cfg.Auth.Mode == config.AuthModeSession,
	)

	// 4. Controllers
	toolController := controller.NewToolController(registry, cfg, sysLogger)

	return &Container{
		ToolController: toolController,
		Logger:         sysLogger,
	}
}
