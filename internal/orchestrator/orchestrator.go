// Package orchestrator runs the ordered provider fallback chain behind POST /translate.
package orchestrator

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/valpere/translay/internal"
	"github.com/valpere/translay/internal/metrics"
	"github.com/valpere/translay/internal/translator"
	"github.com/valpere/translay/pkg/logger"
)

const (
	defaultTimeout = 10 * time.Second

	// defaultFromLanguage is reported as fromLanguage when the caller omitted "from",
	// whichever stage served the request.
	defaultFromLanguage = "auto"
)

type OrchestratorConfig struct {
	// Timeout bounds each provider attempt.
	Timeout time.Duration
}

type Orchestrator struct {
	services []translator.TranslationService
	config   OrchestratorConfig
	log      logger.Interface
	metrics  *metrics.Metrics
}

// New builds an orchestrator trying services in order. m may be nil.
func New(services []translator.TranslationService, config OrchestratorConfig, l logger.Interface, m *metrics.Metrics) *Orchestrator {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if l == nil {
		l = logger.Nop()
	}
	return &Orchestrator{
		services: services,
		config:   config,
		log:      l,
		metrics:  m,
	}
}

// Translate validates req, then asks each provider in turn and returns the first success.
// When every provider fails the result is a synthetic placeholder, so the only errors
// returned are *internal.Error with kind MissingText or MissingTarget.
func (o *Orchestrator) Translate(ctx context.Context, req internal.TranslationRequest) (*internal.TranslationResult, error) {
	if req.Text == "" {
		return nil, internal.NewError(internal.MissingText, nil)
	}
	if req.To == "" {
		return nil, internal.NewError(internal.MissingTarget, nil)
	}

	l := logger.FromContext(ctx, o.log)

	fromLanguage := req.From
	if fromLanguage == "" {
		fromLanguage = defaultFromLanguage
	}
	l.Info("translating %q from %s to %s", req.Text, fromLanguage, req.To)

	result := &internal.TranslationResult{
		Success:      true,
		OriginalText: req.Text,
		FromLanguage: fromLanguage,
		ToLanguage:   req.To,
	}

	svcReq := translator.TranslateRequest{
		Text:       req.Text,
		SourceLang: req.From,
		TargetLang: req.To,
	}

	for i, svc := range o.services {
		if i > 0 {
			l.Info("orchestrator - falling back to %s", svc.Name())
		}

		res, err := o.attempt(ctx, svc, svcReq)
		if err != nil {
			o.metrics.ProviderFailed(svc.Name())
			l.Warn("orchestrator - %s failed: %v", svc.Name(), err)
			continue
		}

		l.Debug("orchestrator - %s served in %s", svc.Name(), res.Latency)
		result.Translation = res.TranslatedText
		result.Stage = svc.Name()
		o.metrics.StageServed(result.Stage)
		return result, nil
	}

	l.Warn("orchestrator - all translation services failed, using synthetic translation")
	result.Translation = Synthetic(req.Text)
	result.Stage = internal.StageSynthetic
	o.metrics.StageServed(result.Stage)
	return result, nil
}

func (o *Orchestrator) attempt(ctx context.Context, svc translator.TranslationService, req translator.TranslateRequest) (res *translator.ServiceResult, err error) {
	serviceCtx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	defer func() {
		if err != nil {
			err = internal.NewError(internal.ProviderFailure, err)
		}
	}()

	// A panicking adapter is one more provider failure.
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, errors.Wrapf(translator.ErrProviderFailure, "%s panicked: %v", svc.Name(), r)
		}
	}()

	res, err = svc.Translate(serviceCtx, req)
	if err != nil {
		if !errors.Is(err, translator.ErrProviderFailure) {
			err = errors.Wrap(translator.ErrProviderFailure, err.Error())
		}
		return nil, err
	}
	if res == nil {
		return nil, errors.Wrapf(translator.ErrProviderFailure, "%s returned no result", svc.Name())
	}
	if res.Error != "" {
		return nil, errors.Wrapf(translator.ErrProviderFailure, "%s: %s", svc.Name(), res.Error)
	}
	return res, nil
}

// Synthetic is the placeholder translation used when no provider succeeded.
func Synthetic(text string) string {
	return "[Translated: " + text + "]"
}
