// Package app configures and runs application.
package app

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/valpere/translay/internal/config"
	v1 "github.com/valpere/translay/internal/controller/http/v1"
	"github.com/valpere/translay/internal/metrics"
	"github.com/valpere/translay/internal/orchestrator"
	"github.com/valpere/translay/internal/translator"
	"github.com/valpere/translay/pkg/httpserver"
	"github.com/valpere/translay/pkg/logger"
)

// BuildServices constructs the provider chain in configured order.
func BuildServices(cfg *config.Config, l logger.Interface) ([]translator.TranslationService, error) {
	var list []translator.TranslationService

	for _, name := range cfg.Providers {
		switch name {
		case "libretranslate":
			list = append(list, translator.NewLibreTranslateService(cfg.LibreTranslate.URL, cfg.LibreTranslate.APIKey, cfg.Timeout))
		case "mymemory":
			list = append(list, translator.NewMyMemoryService(cfg.MyMemory.URL, cfg.MyMemory.Email, cfg.Timeout))
		case "systran":
			list = append(list, translator.NewSystranService(cfg.Systran.URL, cfg.Systran.APIKey, cfg.Timeout))
		case "google":
			list = append(list, translator.NewGoogleService(cfg.Google.Credentials, cfg.Google.ProjectID))
		default:
			l.Warn("app - unknown provider %q, skipping", name)
		}
	}

	if len(list) == 0 {
		return nil, errors.New("no valid providers configured")
	}
	return list, nil
}

// NewOrchestrator wires the configured providers into a fallback chain.
func NewOrchestrator(cfg *config.Config, l logger.Interface, m *metrics.Metrics) (*orchestrator.Orchestrator, error) {
	services, err := BuildServices(cfg, l)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(services, orchestrator.OrchestratorConfig{Timeout: cfg.Timeout}, l, m), nil
}

// NewHandler builds the gin engine with every route registered.
func NewHandler(cfg *config.Config, l logger.Interface, reg *prometheus.Registry) (*gin.Engine, error) {
	m, err := metrics.New(reg)
	if err != nil {
		return nil, errors.Wrap(err, "app - NewHandler - metrics.New")
	}

	orch, err := NewOrchestrator(cfg, l, m)
	if err != nil {
		return nil, errors.Wrap(err, "app - NewHandler - NewOrchestrator")
	}

	handler := gin.New()
	v1.NewRouter(handler, l, orch, cfg.Identity, reg)
	return handler, nil
}

// Run creates objects via constructors and blocks until a signal or server error.
func Run(cfg *config.Config) error {
	l := logger.New(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := NewHandler(cfg, l, reg)
	if err != nil {
		return err
	}

	// HTTP Server. Writes must outlast every provider attempt in the chain.
	writeTimeout := time.Duration(len(cfg.Providers)+1) * cfg.Timeout
	httpServer := httpserver.New(handler, httpserver.Port(cfg.Port), httpserver.WriteTimeout(writeTimeout))
	if err := httpServer.Start(); err != nil {
		return errors.Wrap(err, "app - Run - httpServer.Start")
	}
	l.Info("app - Run - server running on http://localhost:%s, providers: %v", cfg.Port, cfg.Providers)

	// Waiting signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(err, "app - Run - httpServer.Notify")
	}

	// Shutdown
	if shutdownErr := httpServer.Shutdown(); shutdownErr != nil {
		l.Error(shutdownErr, "app - Run - httpServer.Shutdown")
	}

	return err
}
