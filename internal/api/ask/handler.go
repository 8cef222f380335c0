package ask

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"ligo-assistent/config"
	"ligo-assistent/internal/core/knowledge"
	"ligo-assistent/internal/core/model"
	"ligo-assistent/internal/core/pipeline"
	"ligo-assistent/pkg/apperror"
	"ligo-assistent/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

// userFacingError is the single message shown for any pipeline fault.
const userFacingError = "Er ging iets mis bij het beantwoorden van je vraag. Probeer het opnieuw."

type askResponse struct {
	LanguageCode string `json:"language_code"`
	Answer       string `json:"answer"`
	Found        bool   `json:"found"`
	AudioBase64  string `json:"audio_base64"`
	AudioMime    string `json:"audio_mime"`
}

type Handler struct {
	svc *pipeline.Service
}

func NewHandler(svc *pipeline.Service) *Handler {
	return &Handler{svc: svc}
}

// HandleAsk runs one resolution request: recorded audio in, spoken answer out.
func (h *Handler) HandleAsk(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	audio, err := readAudio(c)
	if err != nil {
		return apperror.BadRequest(config.ModulePipeline, c, status.MissingParams, err.Error())
	}

	res, err := h.svc.Resolve(context.Background(), audio)
	if err != nil {
		return writePipelineError(c, err)
	}

	return apperror.Success(c, apperror.SuccessMessage{
		Code:       status.OK,
		Message:    "answer resolved",
		TrackingID: trackingID,
		Data: askResponse{
			LanguageCode: res.LanguageCode,
			Answer:       res.DisplayText,
			Found:        res.Found,
			AudioBase64:  base64.StdEncoding.EncodeToString(res.Audio),
			AudioMime:    "audio/mpeg",
		},
	})
}

// readAudio accepts either a multipart "audio" field or a raw audio body.
func readAudio(c fiber.Ctx) (model.Audio, error) {
	if fh, err := c.FormFile("audio"); err == nil && fh != nil && fh.Size > 0 {
		f, err := fh.Open()
		if err != nil {
			return model.Audio{}, errors.New("cannot open audio upload")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return model.Audio{}, errors.New("cannot read audio upload")
		}
		return model.Audio{Data: data, Format: formatFromMime(fh.Header.Get("Content-Type"))}, nil
	}

	body := c.Body()
	if len(body) == 0 {
		return model.Audio{}, errors.New("audio is required")
	}
	data := make([]byte, len(body))
	copy(data, body)
	return model.Audio{Data: data, Format: formatFromMime(c.Get("Content-Type"))}, nil
}

func formatFromMime(mime string) string {
	switch {
	case strings.Contains(mime, "mpeg"), strings.Contains(mime, "mp3"):
		return "mp3"
	default:
		return "wav"
	}
}

func writePipelineError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, knowledge.ErrNoDocument):
		return apperror.Unavailable(config.ModuleKnowledge, c, status.MissingSource,
			"Het reglement is niet beschikbaar. Probeer het later opnieuw.")
	case errors.Is(err, pipeline.ErrMalformedOutput):
		return apperror.InternalError(config.ModulePipeline, c, status.MalformedModelOutput, errors.New(userFacingError))
	case errors.Is(err, pipeline.ErrSynthesis):
		return apperror.InternalError(config.ModuleSpeech, c, status.SynthesisFailure, errors.New(userFacingError))
	default:
		return apperror.InternalError(config.ModuleGemini, c, status.ModelInvocationFailure, errors.New(userFacingError))
	}
}
