package internal

import (
	"fmt"
	"net/http"
)

// TranslationRequest is the body accepted by POST /translate.
type TranslationRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

// TranslationResult is returned for every successful translate call,
// including the synthetic fallback.
type TranslationResult struct {
	Success      bool   `json:"success"`
	Translation  string `json:"translation"`
	OriginalText string `json:"originalText"`
	FromLanguage string `json:"fromLanguage"`
	ToLanguage   string `json:"toLanguage"`

	// Stage names the provider that served the result, or StageSynthetic.
	Stage string `json:"-"`
}

// ErrorResult is the body of every failed translate call.
type ErrorResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// StageSynthetic is the Stage of a placeholder result built when every provider failed.
const StageSynthetic = "synthetic"

// ErrorKind classifies a failure and selects its HTTP status and public message.
type ErrorKind int

const (
	MissingText ErrorKind = iota + 1
	MissingTarget
	ProviderFailure
	Internal
)

func (k ErrorKind) String() string {
	switch k {
	case MissingText:
		return "missing_text"
	case MissingTarget:
		return "missing_target"
	case ProviderFailure:
		return "provider_failure"
	case Internal:
		return "internal"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// Status is the HTTP status a caller sees for this kind.
// ProviderFailure wraps each failed provider attempt; the chain absorbs it, so it maps to 500 only as a guard.
func (k ErrorKind) Status() int {
	switch k {
	case MissingText, MissingTarget:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message is the public, caller-facing text for this kind.
func (k ErrorKind) Message() string {
	switch k {
	case MissingText:
		return "Please provide text to translate."
	case MissingTarget:
		return "Please provide target language."
	default:
		return "Translation service unavailable. Please try again later."
	}
}

// Error carries an ErrorKind and the underlying cause, which is logged but never exposed.
type Error struct {
	Kind ErrorKind
	Err  error
}

// NewError returns an Error of the given kind wrapping err, which may be nil.
func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result converts the error into its wire form.
func (e *Error) Result() ErrorResult {
	return ErrorResult{Success: false, Error: e.Kind.Message()}
}
