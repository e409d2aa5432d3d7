// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/dresai/dresai/internal/config"
	"github.com/dresai/dresai/internal/domain"
	"github.com/dresai/dresai/internal/handlers"
	"github.com/dresai/dresai/internal/middleware"
	"github.com/dresai/dresai/internal/ratelimit"
	analysisrepo "github.com/dresai/dresai/internal/repository/analysis"
	creditrepo "github.com/dresai/dresai/internal/repository/credit"
	stylecorerepo "github.com/dresai/dresai/internal/repository/stylecore"
	subscriptionrepo "github.com/dresai/dresai/internal/repository/subscription"
	userrepo "github.com/dresai/dresai/internal/repository/user"
	"github.com/dresai/dresai/internal/services"
	"github.com/dresai/dresai/internal/services/admin_services"
	"github.com/dresai/dresai/internal/services/ai"
	"github.com/dresai/dresai/internal/services/analysis"
	"github.com/dresai/dresai/internal/services/payment"
	"github.com/dresai/dresai/internal/services/plan"
	"github.com/dresai/dresai/internal/services/reconcile"
	"github.com/dresai/dresai/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, Stripe-Signature")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.CreditBalance{},
		&domain.Subscription{},
		&domain.StyleCore{},
		&domain.AnalysisRecord{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := userrepo.NewGormUserRepository(db)
	creditRepo := creditrepo.NewGormCreditRepository(db)
	subscriptionRepo := subscriptionrepo.NewGormSubscriptionRepository(db)
	styleCoreRepo := stylecorerepo.NewGormStyleCoreRepository(db)
	analysisRepo := analysisrepo.NewGormAnalysisRepository(db)

	if err := styleCoreRepo.SeedDefaults(context.Background()); err != nil {
		log.Fatalf("Style core seed error: %v", err)
	}

	// --- Services ---
	logger := services.NewProductionLogger("dresai")

	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.VisionAPIKey
	aiConfig.BaseURL = cfg.VisionBaseURL
	aiConfig.Model = cfg.VisionModel
	aiProvider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize vision provider: %v", err)
	}

	paymentConfig := &payment.Config{
		SecretKey:           cfg.StripeSecretKey,
		WebhookSecret:       cfg.StripeWebhookSecret,
		SubscriptionPriceID: cfg.StripeSubscriptionPriceID,
		CreditPackPriceID:   cfg.StripeCreditPackPriceID,
		CreditPackSize:      cfg.CreditPackSize,
		SuccessURL:          cfg.CheckoutSuccessURL,
		CancelURL:           cfg.CheckoutCancelURL,
		PortalReturnURL:     cfg.PortalReturnURL,
	}
	paymentProvider, err := payment.NewStripeProvider(paymentConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize payment provider: %v", err)
	}

	planService := plan.NewService(creditRepo, subscriptionRepo, logger)
	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, cfg.AdminEmail, logger)
	paymentService := payment.NewService(paymentConfig, paymentProvider, userRepo, subscriptionRepo, planService, logger)
	adminService := admin_services.NewAdminService(userRepo, planService)

	matcher := analysis.NewStyleCoreMatcher(styleCoreRepo)
	analysisService := analysis.NewService(aiProvider, planService, matcher, analysisRepo, logger)

	reconciler := reconcile.NewReconciler(reconcile.DefaultConfig(), planService, creditRepo, logger)
	reconcileManager := reconcile.NewManager(reconciler)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	planHandler := handlers.NewPlanHandler(planService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, authService, reconcileManager, cfg.FrontendURL)
	adminHandler := handlers.NewAdminHandler(adminService)

	// --- Rate Limiters ---
	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	analyzeLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.AnalyzeConfig())

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(authService)
	adminMiddleware := middleware.RequireAdmin(userRepo)

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	r.Handle("/register", middleware.RateLimit(authLimiter)(http.HandlerFunc(authHandler.Register))).Methods("POST")
	r.Handle("/login", middleware.RateLimit(authLimiter)(http.HandlerFunc(authHandler.Login))).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	// Webhook is authenticated by signature, not by session.
	r.HandleFunc("/api/payments/webhook", paymentHandler.Webhook).Methods("POST")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/plan/status", planHandler.GetPlanStatus).Methods("GET")
	api.HandleFunc("/user/credits", planHandler.GetCredits).Methods("GET")
	api.HandleFunc("/analyses", analysisHandler.History).Methods("GET")
	api.HandleFunc("/payments/checkout", paymentHandler.CreateCheckout).Methods("POST")
	api.HandleFunc("/payments/portal", paymentHandler.CreatePortal).Methods("POST")
	api.HandleFunc("/payments/reconcile/{sessionID}", paymentHandler.ReconcileState).Methods("GET")

	analyzeRoutes := r.PathPrefix("/api/analyze").Subrouter()
	analyzeRoutes.Use(authMiddleware)
	analyzeRoutes.Use(middleware.RateLimit(analyzeLimiter))
	analyzeRoutes.HandleFunc("", analysisHandler.Analyze).Methods("POST")

	successRoute := r.PathPrefix("/payment/success").Subrouter()
	successRoute.Use(authMiddleware)
	successRoute.HandleFunc("", paymentHandler.PaymentSuccess).Methods("GET")

	adminApiRoutes := r.PathPrefix("/api/admin").Subrouter()
	adminApiRoutes.Use(authMiddleware)
	adminApiRoutes.Use(adminMiddleware)
	adminApiRoutes.HandleFunc("/users", adminHandler.GetAllUsers).Methods("GET")
	adminApiRoutes.HandleFunc("/users/credits", adminHandler.GrantCredits).Methods("POST")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("DresAI server starting on port %s", cfg.ServerPort)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	reconcileManager.Close()
	authLimiter.Close()
	analyzeLimiter.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
