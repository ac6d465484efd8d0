package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/crediwise/crediwise/internal/config"
	"github.com/crediwise/crediwise/internal/handler"
	"github.com/crediwise/crediwise/internal/middleware"
	"github.com/crediwise/crediwise/internal/repository"
	"github.com/crediwise/crediwise/internal/scheduler"
	"github.com/crediwise/crediwise/internal/service"
	"github.com/crediwise/crediwise/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger, cfg)
	h := handler.NewHandler(svc)
	sender := email.NewSender(cfg, logger)

	// Billing-cycle maintenance
	sched := scheduler.NewScheduler(repo, sender, logger)
	if err := sched.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/api/health", h.Health).Methods("GET")
	// Public routes
	r.HandleFunc("/api/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/auth/me", h.Me).Methods("GET")

	authRouter.HandleFunc("/instruments", h.ListInstruments).Methods("GET")
	authRouter.HandleFunc("/instruments", h.CreateInstrument).Methods("POST")
	authRouter.HandleFunc("/instruments/{id:[0-9]+}", h.GetInstrument).Methods("GET")
	authRouter.HandleFunc("/instruments/{id:[0-9]+}", h.UpdateInstrument).Methods("PUT")
	authRouter.HandleFunc("/instruments/{id:[0-9]+}", h.DeleteInstrument).Methods("DELETE")

	authRouter.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	authRouter.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	authRouter.HandleFunc("/expenses/export", h.ExportStatement).Methods("GET")
	authRouter.HandleFunc("/expenses/summary/monthly", h.MonthlySummary).Methods("GET")
	authRouter.HandleFunc("/expenses/summary/category", h.CategorySummary).Methods("GET")
	authRouter.HandleFunc("/expenses/summary/top-merchants", h.TopMerchants).Methods("GET")
	authRouter.HandleFunc("/expenses/{id:[0-9]+}", h.GetExpense).Methods("GET")
	authRouter.HandleFunc("/expenses/{id:[0-9]+}", h.UpdateExpense).Methods("PUT")
	authRouter.HandleFunc("/expenses/{id:[0-9]+}", h.DeleteExpense).Methods("DELETE")

	authRouter.HandleFunc("/recommend", h.Recommend).Methods("POST")
	authRouter.HandleFunc("/recommend/history", h.RecommendationHistory).Methods("GET")

	authRouter.HandleFunc("/analytics/overview", h.Overview).Methods("GET")
	authRouter.HandleFunc("/analytics/monthly-trend", h.MonthlyTrend).Methods("GET")
	authRouter.HandleFunc("/analytics/category-breakdown", h.CategoryBreakdown).Methods("GET")
	authRouter.HandleFunc("/analytics/instrument-performance", h.InstrumentPerformance).Methods("GET")
	authRouter.HandleFunc("/analytics/high-spend-alerts", h.HighSpendAlerts).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
