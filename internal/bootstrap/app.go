package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/studymate/studymate-backend/config"
	"github.com/studymate/studymate-backend/internal/logging"
	"github.com/studymate/studymate-backend/internal/study_assistant/llm"
	"github.com/studymate/studymate-backend/internal/study_assistant/prompts"
	"github.com/studymate/studymate-backend/internal/study_assistant/service"
)

// NewStudyService wires the Gemini client and prompt catalog from cfg.
func NewStudyService(cfg *config.Config) (*service.StudyService, *llm.Client, error) {
	catalog, err := prompts.Default()
	if err != nil {
		return nil, nil, err
	}
	client := llm.NewClient(llm.Options{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	})
	return service.NewStudyService(client, catalog), client, nil
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests for up to cfg.Server.ShutdownTimeout.
func Serve(ctx context.Context, cfg *config.Config) error {
	log := logging.Base()
	SetGinMode(cfg.App.Environment)

	svc, client, err := NewStudyService(cfg)
	if err != nil {
		return err
	}

	router, err := BuildRouter(RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		AllowOrigins:   cfg.Server.AllowOrigins,
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
		Upstream:       client,
		Assistant:      svc,
		Summarizer:     service.PlaceholderSummarizer{},
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("config", fmt.Sprintf("%+v", cfg.Redacted())).Infof("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}
