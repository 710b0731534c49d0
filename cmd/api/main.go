package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/config"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/database"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/logger"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/middleware"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/repository"
	routes "github.com/AgusMolinaCode/StockTracker_Api/internal/server"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Cargar la configuración (.env + variables de entorno)
	cfg := config.Load()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Inicializar base de datos
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Error al inicializar la base de datos")
	}
	defer db.Close()

	repo := repository.NewTransactionRepository(db)
	dashboard := services.NewDashboardService(repo, cfg.DashboardCacheTTL, log)
	transactions := services.NewTransactionService(repo, dashboard, cfg.DefaultPageSize, log)
	exporter := services.NewExportService(transactions, log)
	importer := services.NewImportService(repo, dashboard, log)

	handlers := middleware.NewHandlers(transactions, dashboard, exporter, importer, cfg.MaxUploadSizeBytes, log)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	// Configurar CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Configurar las rutas
	routes.RegisterRoutes(router, handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.Database.Driver).Msg("Servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Error al iniciar el servidor")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Apagando el servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error al apagar el servidor")
	}
}
