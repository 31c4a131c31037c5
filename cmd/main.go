package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"frispy/internal/app"
	"frispy/internal/config"
	httpapi "frispy/internal/http"
	"frispy/internal/logger"
	"frispy/internal/repository"
	"frispy/internal/service"

	_ "frispy/docs"
)

// @title FRISPY POS API
// @version 1.0
// @description Menu, inventory, checkout, orders and sales analytics for a quick-service counter.
// @host localhost:9091
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	backend, tx, store, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}
	defer closeStore()

	menuRepo := repository.NewMenuStore(store)
	invRepo := repository.NewInventoryStore(store)
	saleRepo := repository.NewSaleStore(store)
	orderRepo := repository.NewOrderStore(store)
	clock := service.Clock(time.Now)

	svc := httpapi.Services{
		Menu:      service.NewMenuService(menuRepo),
		Inventory: service.NewInventoryService(invRepo, tx),
		Orders:    service.NewOrderService(menuRepo, orderRepo, tx, clock),
		Sales:     service.NewSalesService(menuRepo, saleRepo, orderRepo, tx, clock, log),
		Reports:   service.NewReportService(saleRepo, invRepo, clock, cfg.Location),
	}
	seeder := service.NewSeeder(menuRepo, invRepo, saleRepo, tx, clock, nil)
	state := app.NewState(seeder, saleRepo, store, log)

	srv := httpapi.NewServer(svc, state, httpapi.Options{
		Production:     cfg.IsProduction(),
		AllowedOrigins: cfg.AllowedOrigins,
	}, log)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": httpServer.Addr, "storage": cfg.StorageDriver}).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	initCtx, stopInit := context.WithCancel(context.Background())
	defer stopInit()
	go initialize(initCtx, state, cfg.SeedSampleData, backend, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopInit()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}

const (
	redisConnectAttempts = 5
	maxInitBackoff       = 30 * time.Second
	storeLockKey         = "store-lock"
	storeLockTTL         = 10 * time.Second
)

// initialize retries state.Initialize with capped exponential backoff until it
// succeeds or ctx is cancelled. Until then /healthz reports the last error.
func initialize(ctx context.Context, state *app.State, seed bool, backend string, log logrus.FieldLogger) {
	for attempt := 1; ; attempt++ {
		err := state.Initialize(ctx, seed)
		if err == nil {
			return
		}
		logger.LogError(log, "main", "initialize", "initializing data", backend, err)
		sleep := maxInitBackoff
		if attempt < 5 {
			sleep = time.Second * time.Duration(1<<attempt)
		}
		log.WithFields(logrus.Fields{"attempt": attempt, "retry_in": sleep.String()}).Warn("retrying data initialization")
		select {
		case <-ctx.Done():
			return
		case <-time.After(sleep):
		}
	}
}

// openStore picks the KV backend. The returned string names it for logs.
func openStore(cfg config.Config, log logrus.FieldLogger) (string, repository.TxManager, *repository.Store, func(), error) {
	if cfg.StorageDriver != config.StorageRedis {
		store := repository.NewStore(repository.NewMemoryKV(), log)
		return config.StorageMemory, repository.NewLocalTx(store), store, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx := context.Background()
	var err error
	for attempt := 1; attempt <= redisConnectAttempts; attempt++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			break
		}
		if attempt == redisConnectAttempts {
			break
		}
		sleep := time.Second * time.Duration(1<<attempt)
		log.WithFields(logrus.Fields{"attempt": attempt, "addr": cfg.RedisAddr, "retry_in": sleep.String()}).
			WithError(err).Warn("failed to connect redis")
		time.Sleep(sleep)
	}
	if err != nil {
		_ = rdb.Close()
		return "", nil, nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	log.WithField("addr", cfg.RedisAddr).Info("connected to redis")

	store := repository.NewStore(repository.NewRedisKV(rdb, cfg.RedisKeyPrefix), log)
	tx := repository.NewRedisTx(store, redislock.New(rdb), cfg.RedisKeyPrefix+storeLockKey, storeLockTTL, log)
	return config.StorageRedis, tx, store, func() { _ = rdb.Close() }, nil
}
