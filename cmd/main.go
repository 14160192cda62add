package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/bookathing/bookathing/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/bookathing/bookathing/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/bookathing/bookathing/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/bookathing/bookathing/internal/api/handlers/get_booking"
	getConfigHandler "github.com/bookathing/bookathing/internal/api/handlers/get_config"
	getResourceHandler "github.com/bookathing/bookathing/internal/api/handlers/get_resource"
	getResourceStatusHandler "github.com/bookathing/bookathing/internal/api/handlers/get_resource_status"
	getStatsHandler "github.com/bookathing/bookathing/internal/api/handlers/get_stats"
	healthHandler "github.com/bookathing/bookathing/internal/api/handlers/health"
	listBookingsHandler "github.com/bookathing/bookathing/internal/api/handlers/list_bookings"
	listResourcesHandler "github.com/bookathing/bookathing/internal/api/handlers/list_resources"
	updateBookingStatusHandler "github.com/bookathing/bookathing/internal/api/handlers/update_booking_status"
	updateResourceStatusHandler "github.com/bookathing/bookathing/internal/api/handlers/update_resource_status"
	"github.com/bookathing/bookathing/internal/api/middleware"
	"github.com/bookathing/bookathing/internal/catalog"
	"github.com/bookathing/bookathing/internal/config"
	mirrorRepo "github.com/bookathing/bookathing/internal/infra/storage/booking"
	bookingsService "github.com/bookathing/bookathing/internal/service/bookings"
	statusService "github.com/bookathing/bookathing/internal/service/status"
	getAvailableSlotsUC "github.com/bookathing/bookathing/internal/usecase/get_available_slots"
	"github.com/bookathing/bookathing/pkg/logger"
	"github.com/bookathing/bookathing/pkg/metrics"
)

const (
	appName = "bookathing"
	version = "2.0.0"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting bookathing server v%s...", version)

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Resource catalog, read-only after load
	resourceCatalog, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		log.Fatal("Failed to load resource catalog from %s: %v", cfg.Catalog.File, err)
	}
	log.Info("Resource catalog loaded: %d resources from %s",
		len(resourceCatalog.Resources()), cfg.Catalog.File)

	// Optional best-effort mirror. A missing or broken mirror never blocks
	// bookings; the service only logs failed writes.
	var mirror bookingsService.Mirror
	var mirrorStore *mirrorRepo.Repository
	mirrorReachable := false
	if cfg.Mirror.Enabled {
		db, err := sql.Open("postgres", cfg.Mirror.DSN())
		if err != nil {
			log.Fatal("Failed to open mirror database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Mirror.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Mirror.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Mirror.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Warn("Mirror database not reachable, continuing without confirmation: %v", err)
		} else {
			log.Info("Mirror database connected (host=%s, port=%d, db=%s)",
				cfg.Mirror.Host, cfg.Mirror.Port, cfg.Mirror.DBName)
			mirrorReachable = true
		}

		mirrorStore = mirrorRepo.NewRepository(db)
		mirror = mirrorStore
	} else {
		log.Info("Mirror disabled - bookings are kept in memory only")
	}

	// Services
	bookingSvc := bookingsService.NewService(resourceCatalog, mirror, metricsCollector, log).
		WithMirrorTimeout(time.Duration(cfg.Mirror.WriteTimeout) * time.Second)
	statusSvc := statusService.NewService(resourceCatalog, bookingSvc, log)

	// Restore recent and upcoming bookings from the mirror so a restart does
	// not reopen slots that were already committed.
	if mirrorReachable {
		restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 30*time.Second)
		from := time.Now().UTC().AddDate(0, 0, -1)
		to := time.Now().UTC().AddDate(1, 0, 0)

		restored := 0
		for _, res := range resourceCatalog.Resources() {
			rows, err := mirrorStore.ListByResource(restoreCtx, res.ID, from, to)
			if err != nil {
				log.Warn("Failed to restore bookings for resource %s: %v", res.ID, err)
				continue
			}
			restored += bookingSvc.Load(rows)
		}
		cancelRestore()
		log.Info("Restored %d bookings from mirror", restored)
	}

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(resourceCatalog, bookingSvc, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getResourceStatus := getResourceStatusHandler.NewHandler(statusSvc, log)
	updateResourceStatus := updateResourceStatusHandler.NewHandler(statusSvc, log)
	listResources := listResourcesHandler.NewHandler(resourceCatalog, log)
	getResource := getResourceHandler.NewHandler(resourceCatalog, log)
	getStats := getStatsHandler.NewHandler(bookingSvc, log)
	getConfig := getConfigHandler.NewHandler(appName, version, resourceCatalog, log)
	health := healthHandler.NewHandler(version)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// Resources
	api.HandleFunc("/resources", listResources.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}", getResource.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/status", getResourceStatus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/status", updateResourceStatus.Handle).Methods(http.MethodPut)

	// Bookings
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)

	// Dashboard
	api.HandleFunc("/config", getConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stats", getStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
