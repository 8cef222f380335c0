package speech

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"ligo-assistent/config"
	"ligo-assistent/pkg/logger"

	"github.com/valyala/fasthttp"
)

// Synthesizer turns text into playable audio for one language.
type Synthesizer interface {
	Synthesize(text, languageCode string) ([]byte, error)
}

// TranslateTTS speaks text through the public Google Translate speech
// endpoint. Unsupported language codes come back as an HTTP error and are
// surfaced to the caller, never silently defaulted.
type TranslateTTS struct {
	endpoint string
	timeout  time.Duration
	client   *fasthttp.Client
}

func NewTranslateTTS() *TranslateTTS {
	return &TranslateTTS{
		endpoint: config.Cfg.TTS.Endpoint,
		timeout:  time.Duration(config.Cfg.TTS.TimeoutSeconds) * time.Second,
		client:   &fasthttp.Client{},
	}
}

func (t *TranslateTTS) Synthesize(text, languageCode string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty speech text")
	}
	if languageCode == "" {
		return nil, errors.New("empty language code")
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", languageCode)
	q.Set("q", text)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(t.endpoint + "?" + q.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := t.client.DoTimeout(req, resp, t.timeout); err != nil {
		logger.Error(err, "%v: tts request failed", config.ModuleSpeech)
		return nil, err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		err := fmt.Errorf("tts status %d for language %q", resp.StatusCode(), languageCode)
		logger.Error(err, "%v: tts rejected request", config.ModuleSpeech)
		return nil, err
	}

	body := resp.Body()
	audio := make([]byte, len(body))
	copy(audio, body)
	return audio, nil
}
