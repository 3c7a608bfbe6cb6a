package translator

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrProviderFailure marks any failure of an upstream provider: transport error, timeout,
// non-2xx status, malformed body or a semantically unsuccessful response.
var ErrProviderFailure = errors.New("provider failure")

const defaultTimeout = 10 * time.Second

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type ServiceResult struct {
	ServiceName    string        `json:"service_name"`
	TranslatedText string        `json:"translated_text"`
	SourceLang     string        `json:"source_lang"`
	Latency        time.Duration `json:"latency"`
	Error          string        `json:"error,omitempty"`
}

// TranslationService is one upstream provider. An empty SourceLang is replaced by the
// provider's own default before the request goes out.
type TranslationService interface {
	Name() string
	Translate(ctx context.Context, req TranslateRequest) (*ServiceResult, error)
}

// failure records msg on the result and returns an error wrapping ErrProviderFailure.
func failure(result *ServiceResult, cause error, msg string) error {
	if cause == nil {
		cause = errors.New(msg)
	} else {
		cause = errors.WithMessage(cause, msg)
	}
	result.Error = cause.Error()
	return errors.Wrap(&providerError{service: result.ServiceName, cause: cause}, ErrProviderFailure.Error())
}

type providerError struct {
	service string
	cause   error
}

func (e *providerError) Error() string {
	return e.service + ": " + e.cause.Error()
}

func (e *providerError) Unwrap() error { return e.cause }

func (e *providerError) Is(target error) bool { return target == ErrProviderFailure }
