package admin

import (
	"ligo-assistent/internal/core/misslog"

	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers the gated teacher views on the provided router.
func RegisterRoutes(r fiber.Router, store *misslog.Store) {
	h := NewHandler(store)

	grp := r.Group("/admin", gate())
	grp.Get("/misses", h.HandleList)
	grp.Get("/misses/export", h.HandleExport)
	grp.Delete("/misses", h.HandleClear)
}
