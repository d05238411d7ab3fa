// main.go
package main

import (
	"context"
	"log"
	"net/http"

	"moviepulse/cmd"
	"moviepulse/internal/data/gateway"
	"moviepulse/internal/data/stream"
	"moviepulse/internal/usecase"
	"moviepulse/internal/wire"
	"moviepulse/pkg/session"
	"moviepulse/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Seed the session from the configured token. Without one the app runs
	// in signed-out mode: reads degrade, mutations redirect to sign-in.
	sessions := session.NewStore()
	if config.API.AuthToken != "" {
		sess, err := session.FromToken(config.API.AuthToken)
		if err != nil {
			logger.Warn("Auth token unusable, running signed out", zap.Error(err))
		} else {
			sessions.Set(sess)
			logger.Info("Session established",
				zap.Int64("user_id", sess.UserID),
				zap.String("username", sess.Username),
			)
		}
	}

	httpClient := &http.Client{Timeout: config.API.RequestTimeout}
	gw := gateway.NewGateway(config.API.BaseURL, httpClient, sessions, logger)

	natsStream := stream.NewNATSStream(
		config.Stream.NATSURL,
		utils.GenerateInstanceID(config.App.Name),
		logger,
	)

	service := usecase.NewService(gw, natsStream, sessions, logger)

	if _, ok := sessions.Current(); ok {
		if err := service.Notifications.Start(context.Background()); err != nil {
			logger.Warn("Notification channel unavailable", zap.Error(err))
		}
	}
	defer service.Notifications.Close()

	app := wire.Wiring(service, sessions, config, logger)

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))
	cmd.APIServer(app.Router, config.App.Port)
}
