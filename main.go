package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RedGhoul/Quitter/handlers"
	"github.com/RedGhoul/Quitter/internal/notification"
	"github.com/RedGhoul/Quitter/internal/progress"
	"github.com/RedGhoul/Quitter/internal/records"
	"github.com/RedGhoul/Quitter/middleware"
	"github.com/RedGhoul/Quitter/services"

	_ "net/http/pprof"
)

var (
	dbPool              *pgxpool.Pool
	recordStore         *records.PostgresStore
	milestoneCatalog    []progress.Milestone
	userService         *services.UserService
	addictionService    *services.AddictionService
	journalService      *services.JournalService
	notificationService *services.NotificationService
	fcmService          *notification.FCMService
	milestoneWatcher    *services.MilestoneWatcher
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to database")

	if err := services.EnsureSchema(ctx, dbPool); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	recordStore = records.NewPostgresStore(dbPool)
	if err := recordStore.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure record store schema:", err)
	}

	// A broken catalog is fatal everywhere except production, where we
	// keep serving a normalized copy rather than take the API down.
	milestoneCatalog, err = progress.LoadCatalog()
	if err != nil {
		if os.Getenv("APP_ENV") == "production" && len(milestoneCatalog) > 0 {
			log.Printf("Milestone catalog failed validation, serving normalized copy: %v", err)
			milestoneCatalog = progress.Normalize(milestoneCatalog)
		} else {
			log.Fatal("Invalid milestone catalog: ", err)
		}
	}
	log.Printf("Loaded %d milestones", len(milestoneCatalog))

	notificationService = services.NewNotificationService(dbPool)
	userService = services.NewUserService(dbPool, recordStore)
	addictionService = services.NewAddictionService(recordStore, milestoneCatalog)
	journalService = services.NewJournalService(dbPool)
	milestoneWatcher = services.NewMilestoneWatcher(recordStore, notificationService, milestoneCatalog)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	userHandler := handlers.NewUserHandler(userService)
	addictionHandler := handlers.NewAddictionHandler(addictionService)
	journalHandler := handlers.NewJournalHandler(journalService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	webhookHandler := handlers.NewWebhookHandler(userService)
	docHandler := handlers.NewDocHandler()

	milestoneWatcher.Start()

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "quitter-api"}`))
	}).Methods("GET")

	r.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/privacy-policy", docHandler.ServePrivacyPolicy).Methods("GET")
	api.HandleFunc("/terms-of-services", docHandler.ServeTermsOfServices).Methods("GET")
	api.HandleFunc("/delete-account-webpage", userHandler.DeleteAccountPage).Methods("GET")
	api.HandleFunc("/min-version", docHandler.GetAppMinVersion).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/delete-account", userHandler.DeleteAccount).Methods("DELETE")

	protected.HandleFunc("/addictions", addictionHandler.GetTrackers).Methods("GET")
	protected.HandleFunc("/addictions", addictionHandler.CreateTracker).Methods("POST")
	protected.HandleFunc("/addictions/{id}", addictionHandler.RenameTracker).Methods("PUT")
	protected.HandleFunc("/addictions/{id}", addictionHandler.DeleteTracker).Methods("DELETE")
	protected.HandleFunc("/addictions/{id}/quit-date", addictionHandler.SetQuitDate).Methods("PUT")
	protected.HandleFunc("/addictions/{id}/quit-date", addictionHandler.ClearQuitDate).Methods("DELETE")
	protected.HandleFunc("/addictions/{id}/progress", addictionHandler.GetProgress).Methods("GET")
	protected.HandleFunc("/milestones", addictionHandler.GetMilestoneCatalog).Methods("GET")

	protected.HandleFunc("/journal", journalHandler.GetEntries).Methods("GET")
	protected.HandleFunc("/journal", journalHandler.CreateEntry).Methods("POST")
	protected.HandleFunc("/journal/{id}", journalHandler.GetEntry).Methods("GET")
	protected.HandleFunc("/journal/{id}", journalHandler.UpdateEntry).Methods("PUT")
	protected.HandleFunc("/journal/{id}", journalHandler.DeleteEntry).Methods("DELETE")

	protected.HandleFunc("/notifications", notificationHandler.GetNotifications).Methods("GET")
	protected.HandleFunc("/notifications/unread-count", notificationHandler.GetUnreadCount).Methods("GET")
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("PUT")
	protected.HandleFunc("/notifications/read-all", notificationHandler.MarkAllAsRead).Methods("PUT")
	protected.HandleFunc("/notifications/{id}", notificationHandler.DeleteNotification).Methods("DELETE")
	protected.HandleFunc("/notifications/preferences", notificationHandler.GetPreferences).Methods("GET")
	protected.HandleFunc("/notifications/preferences", notificationHandler.UpdatePreferences).Methods("PUT")
	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")
	protected.HandleFunc("/notifications/test", notificationHandler.SendTestNotification).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	milestoneWatcher.Stop()
	notificationService.Dispatcher().Stop()

	log.Println("Server shutdown complete")
}
