package pipeline

import (
	"context"
	"fmt"

	"ligo-assistent/config"
	"ligo-assistent/internal/core/knowledge"
	"ligo-assistent/internal/core/misslog"
	"ligo-assistent/internal/core/model"
	"ligo-assistent/internal/core/speech"
	"ligo-assistent/pkg/logger"
)

// ModelClient is the one language-model capability the pipeline needs.
type ModelClient interface {
	Generate(ctx context.Context, prompt string, audio model.Audio) (string, error)
}

// Service runs the answer-resolution flow: prompt -> model -> parse ->
// miss log branch -> pronunciation fix -> synthesis.
type Service struct {
	loader *knowledge.Loader
	model  ModelClient
	tts    speech.Synthesizer
	misses *misslog.Store
	schema Schema
}

func NewService(loader *knowledge.Loader, client ModelClient, tts speech.Synthesizer, misses *misslog.Store, schema Schema) *Service {
	return &Service{
		loader: loader,
		model:  client,
		tts:    tts,
		misses: misses,
		schema: schema,
	}
}

// Misses exposes the underlying miss store (shared with the admin viewer).
func (s *Service) Misses() *misslog.Store {
	return s.misses
}

// Resolve answers one recorded question. Every fault is mapped to a typed
// pipeline error at this boundary; no partial state persists and a miss is
// logged only on a well-formed "not found" result.
func (s *Service) Resolve(ctx context.Context, audio model.Audio) (Result, error) {
	document, err := s.loader.Load(ctx)
	if err != nil {
		return Result{}, err
	}

	raw, err := s.model.Generate(ctx, buildPrompt(document, s.schema), audio)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrModelInvocation, err)
	}

	res, err := parseReply(raw, s.schema)
	if err != nil {
		// raw response goes to operator logs only, never to the user
		logger.WithFields(map[string]interface{}{
			"module": config.ModulePipeline,
			"raw":    raw,
		}).Warnf("unparseable model output")
		return Result{}, err
	}

	if s.schema.DetectsMiss && !res.Found {
		s.misses.Append(res.OriginalQuestion, res.QuestionNL, res.LanguageCode)
	}

	spoken := speech.Normalize(res.SpeechText, res.LanguageCode)
	audioOut, err := s.tts.Synthesize(spoken, res.LanguageCode)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	res.SpeechText = spoken
	res.Audio = audioOut

	logger.Info("%v: resolved question lang=%s found=%t", config.ModulePipeline, res.LanguageCode, res.Found)
	return res, nil
}
