package http

import (
	"context"
	"log/slog"

	"github.com/bkimathi/eventbook/internal/http/handlers"
	"github.com/bkimathi/eventbook/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Env            string
	Log            *slog.Logger
	Schema         graphql.Schema
	Metrics        *observability.Prom
	Registry       *prometheus.Registry
	StorePing      func(context.Context) error
	DefaultActorID string
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(cfg.Log))
	r.Use(Metrics(cfg.Metrics))
	r.Use(CORS(cfg.AllowedOrigins))

	// liveness / readiness

	h := handlers.NewHealthHandler(cfg.StorePing)
	r.GET("/", handlers.Greeting)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))

	// single GraphQL endpoint; GET serves GraphiQL for interactive queries

	gql := handler.New(&handler.Config{
		Schema:   &cfg.Schema,
		Pretty:   true,
		GraphiQL: true,
	})

	graphqlRoutes := r.Group("/graphql", Actor(cfg.DefaultActorID))
	graphqlRoutes.POST("", gin.WrapH(gql))
	graphqlRoutes.GET("", gin.WrapH(gql))

	return r
}
