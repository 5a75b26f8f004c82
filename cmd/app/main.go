package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvelez-dev/travelbook/api"
	"github.com/dvelez-dev/travelbook/config"
	"github.com/dvelez-dev/travelbook/internal/bootstrap"
	"github.com/dvelez-dev/travelbook/internal/cache"
	"github.com/dvelez-dev/travelbook/internal/kafka"
	"github.com/dvelez-dev/travelbook/internal/repository"
	"github.com/dvelez-dev/travelbook/internal/service/bookings"
	"github.com/dvelez-dev/travelbook/internal/service/payments"
	"github.com/dvelez-dev/travelbook/internal/service/travels"
	"github.com/dvelez-dev/travelbook/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	store := repository.NewStore(pool)
	travelRepo := repository.NewTravelRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	travelService := travels.NewTravelService(travelRepo, redisCache)
	bookingService := bookings.NewBookingService(bookingRepo, userRepo, travelRepo)
	paymentService := payments.NewPaymentService(store, paymentRepo, bookingRepo, producer, cfg.Kafka.PaymentsTopic)
	userService := users.NewUserService(userRepo, cfg.Auth)

	handlers := bootstrap.Handlers{
		Auth:     api.NewAuthHandler(userService),
		Travels:  api.NewTravelHandler(travelService),
		Bookings: api.NewBookingHandler(bookingService),
		Payments: api.NewPaymentHandler(paymentService),
	}

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
