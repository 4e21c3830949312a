package main

import (
	"os"

	"github.com/tpcell/portal/internal/pkg/logger"
	"github.com/tpcell/portal/internal/server"
)

// @title Training & Placement Cell API
// @version 1.0
// @description API of the college training and placement portal: student and company onboarding, job announcement forms, applications and admin verification.

// @contact.name Training & Placement Cell

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer access token. Browsers may rely on the session cookie instead.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
