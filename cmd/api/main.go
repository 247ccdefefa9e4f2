package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bkimathi/eventbook/internal/config"
	"github.com/bkimathi/eventbook/internal/db"
	"github.com/bkimathi/eventbook/internal/graph"
	httpx "github.com/bkimathi/eventbook/internal/http"
	"github.com/bkimathi/eventbook/internal/observability"
	"github.com/bkimathi/eventbook/internal/repo/mongostore"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	// tracing

	tracerCtx, tracerCancel := config.WithTimeout(5 * time.Second)
	shutdownTracer, err := observability.InitTracer(tracerCtx, "eventbook", cfg.OTLPEndpoint)
	tracerCancel()

	if err != nil {
		log.Warn("tracing disabled", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	// one store client for the process lifetime

	client, err := db.Connect(cfg.MongoURI)

	if err != nil {
		log.Error("unable to connect to database", "err", err)
		os.Exit(1)
	}

	database := client.Database(cfg.MongoDB)

	idxCtx, idxCancel := config.WithTimeout(5 * time.Second)
	err = db.EnsureIndexes(idxCtx, database)
	idxCancel()

	if err != nil {
		log.Error("unable to ensure indexes", "err", err)
		os.Exit(1)
	}

	// metrics + repositories + schema

	registry := prometheus.NewRegistry()
	metrics := observability.NewProm(registry)

	users := mongostore.NewUsersRepo(database, metrics)
	events := mongostore.NewEventsRepo(database, metrics)

	resolver := graph.NewResolver(users, events, log)

	schema, err := graph.NewSchema(resolver)

	if err != nil {
		log.Error("unable to build schema", "err", err)
		os.Exit(1)
	}

	router := httpx.NewRouter(httpx.RouterConfig{
		Env:            cfg.Env,
		Log:            log,
		Schema:         schema,
		Metrics:        metrics,
		Registry:       registry,
		StorePing:      storePing(client),
		DefaultActorID: cfg.DefaultActorID,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		err = client.Disconnect(ctx)

		if err != nil {
			log.Error("store disconnect failed", "err", err)
		}

		err = shutdownTracer(ctx)

		if err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

func storePing(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	}
}
