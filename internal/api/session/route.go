package session

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers the session reset endpoint.
func RegisterRoutes(r fiber.Router) {
	grp := r.Group("/session")

	grp.Post("/next", HandleNext)
}
