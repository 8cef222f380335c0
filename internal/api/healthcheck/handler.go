package healthcheck

import (
	"context"
	"time"

	"ligo-assistent/config"
	"ligo-assistent/internal/core/knowledge"
	"ligo-assistent/pkg/apperror"
	"ligo-assistent/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

type Handler struct {
	loader *knowledge.Loader
}

func NewHandler(loader *knowledge.Loader) *Handler {
	return &Handler{loader: loader}
}

func (h *Handler) ApiHealthCheck(c fiber.Ctx) error {
	return c.SendString("ok")
}

// KnowledgeHealthCheck reports whether the reference document is loadable.
// Without it the whole pipeline is blocked, so this is the readiness signal.
func (h *Handler) KnowledgeHealthCheck(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := h.loader.Load(ctx); err != nil {
		return apperror.Unavailable(config.ModuleKnowledge, c, status.MissingSource, "reference document missing or unreadable")
	}
	return c.SendString("ok")
}
