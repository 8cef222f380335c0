package ask

import (
	"ligo-assistent/internal/core/pipeline"

	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers the ask endpoint on the provided router.
func RegisterRoutes(r fiber.Router, svc *pipeline.Service) {
	h := NewHandler(svc)

	r.Post("/ask", h.HandleAsk)
}
