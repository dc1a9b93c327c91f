package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dhulbeeg-backend/internal/config"
	"dhulbeeg-backend/internal/database"
	httpapi "dhulbeeg-backend/internal/http"
	"dhulbeeg-backend/internal/logger"
	"dhulbeeg-backend/internal/repository"
	"dhulbeeg-backend/internal/service"
	"dhulbeeg-backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "dhulbeeg-backend")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	kv := store.NewRedisKV(redisClient)
	sessions := store.NewSessionStore(kv, time.Duration(cfg.Session.TTLMinutes)*time.Minute)

	clientsRepo := repository.NewPostgresClientsRepository(db)
	contactsRepo := repository.NewPostgresContactsRepository(db, log)
	propertiesRepo := repository.NewPostgresPropertiesRepository(db)
	servicesRepo := repository.NewPostgresServicesRepository(db)
	usersRepo := repository.NewPostgresUsersRepository(db)

	authHandler := httpapi.NewAuthHandler(usersRepo, sessions, log)

	router := httpapi.NewRouter(log)
	router.RegisterHealthRoute()
	router.RegisterClientRoutes(httpapi.NewClientHandler(clientsRepo, log))
	router.RegisterContactRoutes(httpapi.NewContactHandler(contactsRepo, log))
	router.RegisterPropertyRoutes(httpapi.NewPropertyHandler(propertiesRepo, log))
	router.RegisterServiceRoutes(httpapi.NewServiceHandler(servicesRepo, log))
	router.RegisterAuthRoutes(authHandler)
	router.RegisterExportRoutes(httpapi.NewExportHandler(clientsRepo, propertiesRepo, authHandler, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
