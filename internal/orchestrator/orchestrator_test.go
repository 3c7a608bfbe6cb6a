package orchestrator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/valpere/translay/internal"
	"github.com/valpere/translay/internal/metrics"
	"github.com/valpere/translay/internal/translator"
)

type mockService struct {
	nameVal       string
	translateFunc func(ctx context.Context, req translator.TranslateRequest) (*translator.ServiceResult, error)
	callCount     atomic.Int32
	lastReq       translator.TranslateRequest
}

func (m *mockService) Name() string { return m.nameVal }

func (m *mockService) Translate(ctx context.Context, req translator.TranslateRequest) (*translator.ServiceResult, error) {
	m.callCount.Add(1)
	m.lastReq = req
	if m.translateFunc != nil {
		return m.translateFunc(ctx, req)
	}
	return &translator.ServiceResult{ServiceName: m.nameVal, TranslatedText: m.nameVal + " result"}, nil
}

func failing(name string) *mockService {
	return &mockService{
		nameVal: name,
		translateFunc: func(ctx context.Context, req translator.TranslateRequest) (*translator.ServiceResult, error) {
			return nil, errors.New("service unavailable")
		},
	}
}

func newTestOrchestrator(services ...translator.TranslationService) *Orchestrator {
	return New(services, OrchestratorConfig{Timeout: time.Second}, nil, nil)
}

func TestOrchestrator_New_Defaults(t *testing.T) {
	o := New(nil, OrchestratorConfig{}, nil, nil)

	if o.config.Timeout != defaultTimeout {
		t.Errorf("expected default timeout %s, got %s", defaultTimeout, o.config.Timeout)
	}
	if o.log == nil {
		t.Error("expected a non-nil logger")
	}
}

func TestOrchestrator_Translate_MissingText(t *testing.T) {
	svc := &mockService{nameVal: "a"}
	o := newTestOrchestrator(svc)

	_, err := o.Translate(context.Background(), internal.TranslationRequest{To: "fr"})

	var e *internal.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *internal.Error, got %v", err)
	}
	if e.Kind != internal.MissingText {
		t.Errorf("expected MissingText, got %s", e.Kind)
	}
	if svc.callCount.Load() != 0 {
		t.Error("provider must not be called on invalid input")
	}
}

func TestOrchestrator_Translate_MissingTarget(t *testing.T) {
	o := newTestOrchestrator(&mockService{nameVal: "a"})

	_, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hello"})

	var e *internal.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *internal.Error, got %v", err)
	}
	if e.Kind != internal.MissingTarget {
		t.Errorf("expected MissingTarget, got %s", e.Kind)
	}
}

func TestOrchestrator_Translate_MissingBoth_ReportsTextFirst(t *testing.T) {
	o := newTestOrchestrator()

	_, err := o.Translate(context.Background(), internal.TranslationRequest{})

	var e *internal.Error
	if !errors.As(err, &e) || e.Kind != internal.MissingText {
		t.Errorf("expected MissingText, got %v", err)
	}
}

func TestOrchestrator_Translate_PrimarySucceeds(t *testing.T) {
	a := &mockService{nameVal: "a"}
	b := &mockService{nameVal: "b"}
	o := newTestOrchestrator(a, b)

	res, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hello", To: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Success {
		t.Error("expected success")
	}
	if res.Translation != "a result" {
		t.Errorf("expected 'a result', got %q", res.Translation)
	}
	if res.Stage != "a" {
		t.Errorf("expected stage 'a', got %q", res.Stage)
	}
	if b.callCount.Load() != 0 {
		t.Error("secondary must not be called when primary succeeds")
	}
}

func TestOrchestrator_Translate_FallsBackToSecondary(t *testing.T) {
	a := failing("a")
	b := &mockService{nameVal: "b"}
	o := newTestOrchestrator(a, b)

	res, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hello", From: "en", To: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Translation != "b result" {
		t.Errorf("expected 'b result', got %q", res.Translation)
	}
	if res.FromLanguage != "en" {
		t.Errorf("expected fromLanguage 'en', got %q", res.FromLanguage)
	}
	if a.callCount.Load() != 1 || b.callCount.Load() != 1 {
		t.Errorf("expected one attempt each, got a=%d b=%d", a.callCount.Load(), b.callCount.Load())
	}
}

func TestOrchestrator_Translate_ResultErrorIsFailure(t *testing.T) {
	a := &mockService{
		nameVal: "a",
		translateFunc: func(ctx context.Context, req translator.TranslateRequest) (*translator.ServiceResult, error) {
			return &translator.ServiceResult{ServiceName: "a", Error: "quota exceeded"}, nil
		},
	}
	b := &mockService{nameVal: "b"}
	o := newTestOrchestrator(a, b)

	res, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hello", To: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stage != "b" {
		t.Errorf("expected stage 'b', got %q", res.Stage)
	}
}

func TestOrchestrator_Translate_NilResultIsFailure(t *testing.T) {
	a := &mockService{
		nameVal: "a",
		translateFunc: func(ctx context.Context, req translator.TranslateRequest) (*translator.ServiceResult, error) {
			return nil, nil
		},
	}
	o := newTestOrchestrator(a)

	res, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hello", To: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stage != internal.StageSynthetic {
		t.Errorf("expected synthetic stage, got %q", res.Stage)
	}
}

func TestOrchestrator_Translate_PanicIsFailure(t *testing.T) {
	a := &mockService{
		nameVal: "a",
		translateFunc: func(ctx context.Context, req translator.TranslateRequest) (*translator.ServiceResult, error) {
			panic("boom")
		},
	}
	b := &mockService{nameVal: "b"}
	o := newTestOrchestrator(a, b)

	res, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hello", To: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stage != "b" {
		t.Errorf("expected stage 'b', got %q", res.Stage)
	}
}

func TestOrchestrator_Translate_AllFail_Synthetic(t *testing.T) {
	o := newTestOrchestrator(failing("a"), failing("b"))

	res, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hello", To: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := internal.TranslationResult{
		Success:      true,
		Translation:  "[Translated: Hello]",
		OriginalText: "Hello",
		FromLanguage: "auto",
		ToLanguage:   "fr",
		Stage:        internal.StageSynthetic,
	}
	if *res != want {
		t.Errorf("expected %+v, got %+v", want, *res)
	}
}

func TestOrchestrator_Translate_NoServices_Synthetic(t *testing.T) {
	o := newTestOrchestrator()

	res, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hi", To: "de"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Translation != "[Translated: Hi]" {
		t.Errorf("unexpected translation %q", res.Translation)
	}
}

func TestOrchestrator_Translate_SyntheticIsIdempotent(t *testing.T) {
	o := newTestOrchestrator(failing("a"), failing("b"))
	req := internal.TranslationRequest{Text: "Good morning", From: "en", To: "uk"}

	first, err := o.Translate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		next, err := o.Translate(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *next != *first {
			t.Errorf("run %d: expected %+v, got %+v", i, *first, *next)
		}
	}
}

func TestOrchestrator_Translate_PassesSourceThrough(t *testing.T) {
	a := failing("a")
	b := failing("b")
	o := newTestOrchestrator(a, b)

	if _, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hello", To: "fr"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Each provider applies its own default to an empty source.
	if a.lastReq.SourceLang != "" || b.lastReq.SourceLang != "" {
		t.Errorf("expected empty source passed to providers, got %q and %q", a.lastReq.SourceLang, b.lastReq.SourceLang)
	}

	if _, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hello", From: "auto", To: "fr"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.lastReq.SourceLang != "auto" {
		t.Errorf("expected explicit 'auto' passed through, got %q", b.lastReq.SourceLang)
	}
}

func TestOrchestrator_Translate_TimeoutFallsThrough(t *testing.T) {
	slow := &mockService{
		nameVal: "slow",
		translateFunc: func(ctx context.Context, req translator.TranslateRequest) (*translator.ServiceResult, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	b := &mockService{nameVal: "b"}
	o := New([]translator.TranslationService{slow, b}, OrchestratorConfig{Timeout: 20 * time.Millisecond}, nil, nil)

	start := time.Now()
	res, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hello", To: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stage != "b" {
		t.Errorf("expected stage 'b', got %q", res.Stage)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("timeout did not bound the slow provider")
	}
}

func TestOrchestrator_Translate_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		t.Fatalf("metrics.New: %v", err)
	}

	o := New([]translator.TranslationService{failing("a"), failing("b")}, OrchestratorConfig{}, nil, m)
	if _, err := o.Translate(context.Background(), internal.TranslationRequest{Text: "Hello", To: "fr"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(m.Stages().WithLabelValues(internal.StageSynthetic)); got != 1 {
		t.Errorf("expected 1 synthetic stage, got %v", got)
	}
	if got := testutil.ToFloat64(m.Failures().WithLabelValues("a")); got != 1 {
		t.Errorf("expected 1 failure for a, got %v", got)
	}
}

func TestSynthetic(t *testing.T) {
	if got := Synthetic("Hello"); got != "[Translated: Hello]" {
		t.Errorf("unexpected synthetic translation %q", got)
	}
	if got := Synthetic(""); got != "[Translated: ]" {
		t.Errorf("unexpected synthetic translation %q", got)
	}
}

func TestOrchestrator_Attempt_WrapsProviderFailure(t *testing.T) {
	panicking := &mockService{
		nameVal: "p",
		translateFunc: func(ctx context.Context, req translator.TranslateRequest) (*translator.ServiceResult, error) {
			panic("boom")
		},
	}
	empty := &mockService{
		nameVal: "e",
		translateFunc: func(ctx context.Context, req translator.TranslateRequest) (*translator.ServiceResult, error) {
			return &translator.ServiceResult{ServiceName: "e", Error: "empty translation response"}, nil
		},
	}

	for _, svc := range []*mockService{failing("f"), panicking, empty} {
		o := newTestOrchestrator(svc)

		res, err := o.attempt(context.Background(), svc, translator.TranslateRequest{Text: "Hello", TargetLang: "fr"})

		if res != nil {
			t.Errorf("%s: expected nil result on failure", svc.Name())
		}
		var e *internal.Error
		if !errors.As(err, &e) {
			t.Fatalf("%s: expected *internal.Error, got %v", svc.Name(), err)
		}
		if e.Kind != internal.ProviderFailure {
			t.Errorf("%s: expected ProviderFailure, got %s", svc.Name(), e.Kind)
		}
		if !errors.Is(err, translator.ErrProviderFailure) {
			t.Errorf("%s: expected error to match ErrProviderFailure", svc.Name())
		}
	}
}

func TestOrchestrator_Attempt_SuccessHasNoError(t *testing.T) {
	svc := &mockService{nameVal: "a"}
	o := newTestOrchestrator(svc)

	res, err := o.attempt(context.Background(), svc, translator.TranslateRequest{Text: "Hello", TargetLang: "fr"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TranslatedText != "a result" {
		t.Errorf("unexpected translation %q", res.TranslatedText)
	}
}
