package healthcheck

import (
	"ligo-assistent/internal/core/knowledge"

	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router, loader *knowledge.Loader) {
	h := NewHandler(loader)

	grp := r.Group("/health")

	grp.Get("/api", h.ApiHealthCheck)
	grp.Get("/knowledge", h.KnowledgeHealthCheck)
}
