package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fjod/swiftrail/internal/cache"
	h "github.com/fjod/swiftrail/internal/http"
	"github.com/fjod/swiftrail/internal/mailer"
	"github.com/fjod/swiftrail/internal/publisher"
	"github.com/fjod/swiftrail/internal/reference"
	"github.com/fjod/swiftrail/internal/render"
	"github.com/fjod/swiftrail/internal/repository"
	s "github.com/fjod/swiftrail/internal/service"
	"github.com/fjod/swiftrail/pkg/circuitbreaker"
	"github.com/fjod/swiftrail/pkg/logger"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(log)

	// Set up MongoDB connection
	ctx := context.Background()
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	if err := repository.CreateIndexes(ctx, mongoDB); err != nil {
		log.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}
	log.Info("connected to MongoDB", "uri", cfg.MongoURI, "db", cfg.MongoDBName)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	log.Info("redis ping succeeded", "addr", cfg.RedisAddr)

	transport, err := newTransport(cfg, log)
	if err != nil {
		log.Error("failed to set up mail transport", "error", err)
		os.Exit(1)
	}

	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()

	var events *s.EventHandler
	var orderPublisher *publisher.OrderPublisher
	if len(cfg.KafkaBrokers) > 0 {
		writer := publisher.NewWriter(cfg.KafkaTopic, cfg.KafkaBrokers...)
		outbox := repository.NewOutboxRepository(mongoDB)
		orderPublisher = publisher.NewOrderPublisher(writer, outbox, log)
		events = s.NewEventHandler(orderPublisher, cfg.StoreTimeout)
		go publisher.NewOutboxPoller(outbox, writer, log).Run(pollerCtx)
		log.Info("order events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	orders := s.NewOrderHandler(repository.NewOrderRepository(mongoDB), cfg.StoreTimeout)
	users := s.NewUserHandler(repository.NewUserRepository(mongoDB), cfg.StoreTimeout)
	trips := s.NewTripHandler(repository.NewTripRepository(mongoDB), cfg.StoreTimeout)
	mail := s.NewMailHandler(transport, cfg.SMTPTimeout)
	renderer := render.NewRenderer()

	checkoutService := s.NewCheckoutService(orders, users, mail, events, renderer, reference.NewGenerator(), log)
	cartService := s.NewCartService(users, log)
	tripService := s.NewTripService(trips, cache.NewRedisCache(redisClient), log)
	orderService := s.NewOrderService(orders, mail, renderer, log)

	router := h.NewRouter(h.Handlers{
		Trips:    h.NewTripHandler(tripService, cfg.RequestTimeout),
		Cart:     h.NewCartHandler(cartService, cfg.RequestTimeout),
		Checkout: h.NewCheckoutHandler(checkoutService, cartService, log, cfg.RequestTimeout),
		Orders:   h.NewOrdersHandler(orderService, cfg.RequestTimeout),
	}, h.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		AccessLog:          cfg.AccessLog,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "swiftrail"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("swiftrail starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	stopPoller()
	if orderPublisher != nil {
		if err := orderPublisher.Close(); err != nil {
			log.Warn("failed to close order publisher", "error", err)
		}
	}
	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.Warn("failed to disconnect from MongoDB", "error", err)
	}
	log.Info("server exited")
}

func newTransport(cfg *Config, log *slog.Logger) (mailer.Transport, error) {
	if cfg.SMTPHost == "" {
		log.Warn("SMTP_HOST not set, confirmations are only logged")
		return mailer.NewLogTransport(log), nil
	}
	transport, err := mailer.NewSMTPTransport(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		SSL:      cfg.SMTPSSL,
		Timeout:  cfg.SMTPTimeout,
	}, circuitbreaker.DefaultConfig(), log)
	if err != nil {
		return nil, err
	}
	return transport, nil
}
