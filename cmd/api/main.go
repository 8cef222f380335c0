package main

import (
	"fmt"

	"ligo-assistent/config"
	"ligo-assistent/internal/api/admin"
	"ligo-assistent/internal/api/ask"
	"ligo-assistent/internal/api/healthcheck"
	"ligo-assistent/internal/api/session"
	"ligo-assistent/internal/core/knowledge"
	"ligo-assistent/internal/core/misslog"
	"ligo-assistent/internal/core/model"
	"ligo-assistent/internal/core/pipeline"
	"ligo-assistent/internal/core/speech"
	"ligo-assistent/internal/middleware"
	"ligo-assistent/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

func main() {
	app := fiber.New(fiber.Config{
		AppName:   config.Cfg.Server.AppName,
		BodyLimit: config.Cfg.Server.BodyLimit,
	})

	app.Use(middleware.PanicRecovery())
	app.Use(middleware.ConnectionLimit(middleware.NewConnectionLimiter(config.Cfg.Server.Concurrency)))

	loader := knowledge.NewLoader(config.Cfg.Knowledge.Path)
	store := misslog.NewStore(config.Cfg.MissLog.Path)
	svc := pipeline.NewService(
		loader,
		model.NewGeminiClient(),
		speech.NewTranslateTTS(),
		store,
		pipeline.SchemaByName(config.Cfg.Pipeline.Schema),
	)

	// routes
	healthcheck.RegisterRoutes(app, loader)
	ask.RegisterRoutes(app, svc)
	admin.RegisterRoutes(app, store)
	session.RegisterRoutes(app)

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	if err := app.Listen(addr); err != nil {
		logger.Fatal(err, "server error")
	}
}
