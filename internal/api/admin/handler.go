package admin

import (
	"errors"

	"ligo-assistent/config"
	"ligo-assistent/internal/core/misslog"
	"ligo-assistent/pkg/apperror"
	"ligo-assistent/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

type listResponse struct {
	Records   []misslog.Record `json:"records"`
	Corrupted bool             `json:"corrupted"`
}

type Handler struct {
	store *misslog.Store
}

func NewHandler(store *misslog.Store) *Handler {
	return &Handler{store: store}
}

// gate checks the shared teacher secret. Plain equality, no lockout; this
// is a convenience gate, not a security boundary.
func gate() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Get("X-Admin-Password") != config.Cfg.Admin.Password {
			return apperror.Unauthorized(config.ModuleAdmin, c, "invalid admin password")
		}
		return c.Next()
	}
}

// HandleList renders the full miss log. A corrupted store is reported as
// such so the viewer can offer a reset, never as a raw fault.
func (h *Handler) HandleList(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	records, err := h.store.ReadAll()
	if err != nil {
		if errors.Is(err, misslog.ErrSchemaMismatch) {
			return apperror.Success(c, apperror.SuccessMessage{
				Code:       status.OK,
				Message:    "miss log is corrupted; reset available",
				TrackingID: trackingID,
				Data:       listResponse{Records: []misslog.Record{}, Corrupted: true},
			})
		}
		return apperror.InternalError(config.ModuleAdmin, c, status.LogStoreReadFailure, err)
	}

	return apperror.Success(c, apperror.SuccessMessage{
		Code:       status.OK,
		Message:    "miss log",
		TrackingID: trackingID,
		Data:       listResponse{Records: records},
	})
}

// HandleExport streams the raw CSV for download.
func (h *Handler) HandleExport(c fiber.Ctx) error {
	data, err := h.store.Export()
	if err != nil {
		return apperror.InternalError(config.ModuleAdmin, c, status.LogStoreReadFailure, err)
	}
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="gemiste_vragen.csv"`)
	return c.Send(data)
}

// HandleClear irrecoverably deletes the miss log. Works on corrupted
// stores too; this is the reset action.
func (h *Handler) HandleClear(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	if err := h.store.Clear(); err != nil {
		return apperror.InternalError(config.ModuleAdmin, c, status.LogStoreReadFailure, err)
	}
	return apperror.Success(c, apperror.SuccessMessage{
		Code:       status.OK,
		Message:    "miss log cleared",
		TrackingID: trackingID,
	})
}
