package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"
	"wallet-service/src/internal/config"
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/pkg/log"

	"github.com/hibiken/asynq"
)

func main() {

	viperConfig := config.NewViper()
	viperConfig.SetDefault("log.level", "DEBUG")
	viperConfig.SetDefault("app.name", "WALLET_SERVICE")
	viperConfig.SetDefault("web.port", 8080)
	viperConfig.SetDefault("wallet.default_currency", "ETB")
	log.InitLogger(viperConfig)
	config.NewKafkaConfig(viperConfig)
	logger := log.GetLogger()
	config.LoadRedisConfig(viperConfig)
	db := config.NewDatabase(viperConfig, logger)
	redisClient := config.NewRedis()
	producer := config.NewKafkaProducer(viperConfig, logger)
	validate := config.NewValidator(viperConfig)
	app := config.NewFiber(viperConfig)
	app.Use(middleware.NewLogger())
	chapaClient := config.NewChapaClient(viperConfig, logger)
	notifierClient := config.NewNotifier(viperConfig, logger)
	asynqClient := config.NewAsynqClient(viperConfig)
	asynqServer := config.NewAsynqServer(viperConfig)
	mux := asynq.NewServeMux()
	config.Bootstrap(&config.BootstrapConfig{
		DB:          db,
		App:         app,
		Log:         logger,
		Validate:    validate,
		Config:      viperConfig,
		Producer:    producer,
		Redis:       redisClient,
		Chapa:       chapaClient,
		Notifier:    notifierClient,
		AsynqClient: asynqClient,
		Async:       mux,
	})

	go func() {
		if err := asynqServer.Run(mux); err != nil {
			logger.Error("main", fmt.Sprintf("Failed to start task server: %v", err), "main", "")
		}
	}()

	webPort := viperConfig.GetInt("web.port")
	err := app.Listen(fmt.Sprintf(":%d", webPort))
	if err != nil {
		log.GetLogger().Error("main", fmt.Sprintf("Failed to start server: %v", err), "main", "")
	}
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	go func() {
		<-quit
		logger.Info("main", "Server wallet-service is shutting down...", "gracefull", "")

		_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		asynqServer.Shutdown()
		if err := asynqClient.Close(); err != nil {
			logger.Error("main", fmt.Sprintf("Error closing task client: %v", err), "graceful", "")
		}
		if err := app.Shutdown(); err != nil {
			logger.Error("main", fmt.Sprintf("Error during shutdown: %v", err), "graceful", "")
		}
		close(done)
	}()

	<-done
	logger.Info("main", fmt.Sprintf("Server %s stopped", viperConfig.GetString("app.name")), "gracefull", "")
}
