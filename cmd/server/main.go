package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/JonathanDVZ/CRMGraphQL/internal/config"
	"github.com/JonathanDVZ/CRMGraphQL/internal/events"
	"github.com/JonathanDVZ/CRMGraphQL/internal/graph"
	"github.com/JonathanDVZ/CRMGraphQL/internal/logging"
	"github.com/JonathanDVZ/CRMGraphQL/internal/search"
	"github.com/JonathanDVZ/CRMGraphQL/internal/service"
	httpserver "github.com/JonathanDVZ/CRMGraphQL/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	} else {
		logger.Warn("KAFKA_ADDRESS not set, event publishing disabled")
	}

	productSearch := &search.ProductSearch{DB: db, Index: search.DefaultIndex}
	if configuration.ES_URL != "" {
		esClient, err := search.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		productSearch.ES = esClient
	} else {
		logger.Warn("ES_URL not set, product search served from the database")
	}

	resolver := &graph.Resolver{
		Users:    &service.UserService{DB: db, Producer: producer, JWTSecret: jwtSecret},
		Products: &service.ProductService{DB: db, Producer: producer, Search: productSearch},
		Clients:  &service.ClientService{DB: db},
		Orders:   &service.OrderService{DB: db, Producer: producer},
	}

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatalf("schema error: %v", err)
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, &httpserver.Deps{
		GraphQLHandler: &graph.Handler{Schema: schema},
		JWTSecret:      jwtSecret,
	})

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
		}
	}()
	logger.Info("server ready", "addr", srv.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "err", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "err", err)
	}

	logger.Info("shutdown complete")
}
