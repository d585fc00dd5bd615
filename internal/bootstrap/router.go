package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/studymate/studymate-backend/internal/api/http"
	"github.com/studymate/studymate-backend/internal/api/http/middleware"
	"github.com/studymate/studymate-backend/internal/metrics"
	sahttp "github.com/studymate/studymate-backend/internal/study_assistant/http"
	"github.com/studymate/studymate-backend/internal/study_assistant/service"
	"github.com/studymate/studymate-backend/internal/web"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowOrigins   []string
	MaxUploadBytes int64
	Upstream       httpapi.UpstreamStatus
	Assistant      sahttp.StudyAssistant
	Summarizer     service.Summarizer
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(dep.AllowOrigins)))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	if dep.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = dep.MaxUploadBytes
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Upstream)
	healthHandler.RegisterRoutes(r)

	metrics.Register()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	webHandler, err := web.New()
	if err != nil {
		return nil, err
	}
	webHandler.Register(r)

	sahttp.New(dep.Assistant, dep.Summarizer, dep.MaxUploadBytes).Register(r)

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
