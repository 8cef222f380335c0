package session

import (
	"sync/atomic"

	"ligo-assistent/pkg/apperror"
	"ligo-assistent/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

// counter is the opaque "start a fresh capture" token. It only forces the
// client to discard its previous recording widget; the value itself carries
// no meaning.
var counter atomic.Int64

type nextResponse struct {
	Counter int64 `json:"counter"`
}

// HandleNext hands out the next capture token.
func HandleNext(c fiber.Ctx) error {
	return apperror.Success(c, apperror.SuccessMessage{
		Code:       status.OK,
		Message:    "new capture session",
		TrackingID: c.Get("X-Request-ID"),
		Data:       nextResponse{Counter: counter.Add(1)},
	})
}
