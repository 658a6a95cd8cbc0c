package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"coachdesk/backend/database"
	"coachdesk/backend/handlers"
	"coachdesk/backend/middleware"
	"coachdesk/backend/migrations"
	"coachdesk/backend/security"
	"coachdesk/backend/services"

	"github.com/gorilla/mux"
)

func main() {
	// Parse command line flags
	noExit := flag.Bool("no-exit", false, "Don't exit after database reset")
	resetDB := flag.Bool("reset-db", false, "Force reset the database")
	flag.Parse()

	// Check if we're running in database reset mode
	isResetDB := os.Getenv("RESET_DB") == "true" || *resetDB

	// Check environment
	isDevelopment := os.Getenv("APP_ENV") != "production" &&
		os.Getenv("ENVIRONMENT") != "production" &&
		os.Getenv("ENV") != "production"

	if isResetDB {
		log.Println("Running in database reset mode")
	}

	if isDevelopment {
		log.Println("Running in development environment")
	}

	// Use an encryption key from environment or generate a default one
	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		log.Println("Warning: ENCRYPTION_KEY not set, using a default key. This is NOT secure for production!")
		encryptionKey = "default-key-for-development-only"
	}
	security.InitializeEncryption(encryptionKey)

	// Initialize database
	err := database.InitDB()
	if err != nil {
		log.Fatal(err)
	}

	// Run migrations (including demo data seeding if enabled)
	log.Println("Running migrations...")
	err = migrations.RunMigrations(database.DB)
	if err != nil {
		log.Printf("Warning: Failed to run migrations: %v", err)
	}

	err = database.SeedDefaultUsers()
	if err != nil {
		log.Printf("Warning: Failed to seed default users: %v", err)
	}

	// If running in reset mode, exit after database setup is complete
	// unless --no-exit flag is provided
	if isResetDB && !*noExit {
		log.Println("Database reset completed successfully. Exiting.")
		return
	}

	// Load environment variables but don't do any database operations
	services.LoadEnvVariables()

	// Initialize Firebase Admin SDK
	log.Println("Initializing Firebase Admin SDK...")
	err = middleware.InitializeFirebase()
	if err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	} else {
		log.Println("Firebase Admin SDK initialized (or running in dev mode with auth checks disabled)")
	}

	// Start the email client and the meeting reminder loop
	services.InitMailer()
	services.StartScheduler()

	// Create router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	// Serve static files from the "dist" directory for the frontend
	fs := http.FileServer(http.Dir("./dist"))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("", fs))
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Don't log asset requests
		if !strings.HasPrefix(r.URL.Path, "/assets/") {
			log.Printf("Serving index.html for path: %s", r.URL.Path)
		}
		http.ServeFile(w, r, "./dist/index.html")
	}).Methods("GET")

	// Configure the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start the server
	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Protected lead routes
	protectedRouter.HandleFunc("/leads", handlers.GetLeads).Methods("GET")
	protectedRouter.HandleFunc("/leads", handlers.AddLead).Methods("POST")
	protectedRouter.HandleFunc("/leads/{id}", handlers.GetLead).Methods("GET")
	protectedRouter.HandleFunc("/leads/{id}", handlers.UpdateLead).Methods("PUT")
	protectedRouter.HandleFunc("/leads/{id}", handlers.DeleteLead).Methods("DELETE")

	// Protected customer routes
	protectedRouter.HandleFunc("/customers", handlers.GetCustomers).Methods("GET")
	protectedRouter.HandleFunc("/customers", handlers.AddCustomer).Methods("POST")
	protectedRouter.HandleFunc("/customers/{id}", handlers.GetCustomer).Methods("GET")
	protectedRouter.HandleFunc("/customers/{id}", handlers.UpdateCustomer).Methods("PUT")
	protectedRouter.HandleFunc("/customers/{id}", handlers.DeleteCustomer).Methods("DELETE")
	protectedRouter.HandleFunc("/customers/{id}/plans", handlers.AssignPlan).Methods("POST")
	protectedRouter.HandleFunc("/customers/{id}/plans/{planId}", handlers.UnassignPlan).Methods("DELETE")

	// Protected meeting routes
	protectedRouter.HandleFunc("/meetings", handlers.GetMeetings).Methods("GET")
	protectedRouter.HandleFunc("/meetings", handlers.AddMeeting).Methods("POST")
	protectedRouter.HandleFunc("/meetings/{id}", handlers.UpdateMeeting).Methods("PUT")
	protectedRouter.HandleFunc("/meetings/{id}", handlers.DeleteMeeting).Methods("DELETE")

	// Protected payment routes
	protectedRouter.HandleFunc("/payments", handlers.GetPayments).Methods("GET")
	protectedRouter.HandleFunc("/payments", handlers.AddPayment).Methods("POST")
	protectedRouter.HandleFunc("/payments/{id}", handlers.UpdatePayment).Methods("PUT")
	protectedRouter.HandleFunc("/payments/{id}", handlers.DeletePayment).Methods("DELETE")

	// Protected budget routes
	protectedRouter.HandleFunc("/budgets", handlers.GetBudgets).Methods("GET")
	protectedRouter.HandleFunc("/budgets", handlers.AddBudget).Methods("POST")
	protectedRouter.HandleFunc("/budgets/{id}", handlers.UpdateBudget).Methods("PUT")
	protectedRouter.HandleFunc("/budgets/{id}", handlers.DeleteBudget).Methods("DELETE")

	// Protected plan routes
	protectedRouter.HandleFunc("/workout-plans", handlers.GetWorkoutPlans).Methods("GET")
	protectedRouter.HandleFunc("/workout-plans", handlers.AddWorkoutPlan).Methods("POST")
	protectedRouter.HandleFunc("/workout-plans/{id}", handlers.UpdateWorkoutPlan).Methods("PUT")
	protectedRouter.HandleFunc("/workout-plans/{id}", handlers.DeleteWorkoutPlan).Methods("DELETE")
	protectedRouter.HandleFunc("/nutrition-plans", handlers.GetNutritionPlans).Methods("GET")
	protectedRouter.HandleFunc("/nutrition-plans", handlers.AddNutritionPlan).Methods("POST")
	protectedRouter.HandleFunc("/nutrition-plans/{id}", handlers.UpdateNutritionPlan).Methods("PUT")
	protectedRouter.HandleFunc("/nutrition-plans/{id}", handlers.DeleteNutritionPlan).Methods("DELETE")

	// Protected knowledge base routes
	protectedRouter.HandleFunc("/articles", handlers.GetArticles).Methods("GET")
	protectedRouter.HandleFunc("/articles", handlers.AddArticle).Methods("POST")
	protectedRouter.HandleFunc("/articles/{id}", handlers.GetArticle).Methods("GET")
	protectedRouter.HandleFunc("/articles/{id}", handlers.UpdateArticle).Methods("PUT")
	protectedRouter.HandleFunc("/articles/{id}", handlers.DeleteArticle).Methods("DELETE")

	// Saved views routes
	protectedRouter.HandleFunc("/views", handlers.GetSavedViews).Methods("GET")
	protectedRouter.HandleFunc("/views", handlers.CreateSavedView).Methods("POST")
	protectedRouter.HandleFunc("/views/default", handlers.GetDefaultSavedView).Methods("GET")
	protectedRouter.HandleFunc("/views/{id}", handlers.GetSavedView).Methods("GET")
	protectedRouter.HandleFunc("/views/{id}", handlers.UpdateSavedView).Methods("PUT")
	protectedRouter.HandleFunc("/views/{id}", handlers.DeleteSavedView).Methods("DELETE")

	// Per-session table state routes
	protectedRouter.HandleFunc("/viewstate/{resource}", handlers.GetViewState).Methods("GET")
	protectedRouter.HandleFunc("/viewstate/{resource}", handlers.UpdateViewState).Methods("PATCH")
	protectedRouter.HandleFunc("/viewstate/{resource}/save", handlers.SaveViewState).Methods("POST")
	protectedRouter.HandleFunc("/viewstate/{resource}/apply/{viewId}", handlers.ApplyViewState).Methods("POST")

	// Filter field generation routes
	protectedRouter.HandleFunc("/resources/{resource}/filter-fields", handlers.GetFilterFields).Methods("GET")
	protectedRouter.HandleFunc("/resources/{resource}/columns", handlers.GetTableColumns).Methods("GET")

	// WhatsApp messaging routes
	whatsapp := handlers.NewWhatsAppHandler(database.DB)
	protectedRouter.HandleFunc("/whatsapp/config", whatsapp.GetConfig).Methods("GET")
	protectedRouter.HandleFunc("/whatsapp/config", whatsapp.UpdateConfig).Methods("PUT")
	protectedRouter.HandleFunc("/whatsapp/templates", whatsapp.GetTemplates).Methods("GET")
	protectedRouter.HandleFunc("/whatsapp/templates", whatsapp.CreateTemplate).Methods("POST")
	protectedRouter.HandleFunc("/whatsapp/templates/{id}", whatsapp.DeleteTemplate).Methods("DELETE")
	protectedRouter.HandleFunc("/whatsapp/send", whatsapp.SendMessage).Methods("POST")

	// Protected user routes
	protectedRouter.HandleFunc("/users", handlers.GetUsers).Methods("GET")
	protectedRouter.HandleFunc("/users/sync", handlers.SyncUser).Methods("POST")
}
