package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nurpe/outvoice/internal/auth"
	"github.com/nurpe/outvoice/internal/config"
	"github.com/nurpe/outvoice/internal/db"
	"github.com/nurpe/outvoice/internal/excel"
	httphandler "github.com/nurpe/outvoice/internal/http"
	"github.com/nurpe/outvoice/internal/http/middleware"
	"github.com/nurpe/outvoice/internal/logger"
	"github.com/nurpe/outvoice/internal/pdf"
	"github.com/nurpe/outvoice/internal/repository"
	"github.com/nurpe/outvoice/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	userRepo := repository.NewUserRepository(database)
	proposalRepo := repository.NewProposalRepository(database)
	templateRepo := repository.NewTemplateRepository(database)

	tokens := auth.NewManager(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)

	authService := service.NewAuthService(userRepo, tokens, log)
	proposalService := service.NewProposalService(proposalRepo, templateRepo, log)
	templateService := service.NewTemplateService(templateRepo, log)
	exportService := service.NewExportService(proposalService, pdf.NewGenerator(), excel.NewGenerator(), cfg, log)

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := templateService.Seed(seedCtx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("failed to seed templates")
	}
	cancel()

	handler := httphandler.NewHandler(authService, proposalService, templateService, exportService, log)
	authMiddleware := middleware.Auth(tokens)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting outvoice service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
