package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/blogem/timesheet/authenticator"
	"github.com/blogem/timesheet/controllers"
	"github.com/blogem/timesheet/database"
	authmiddleware "github.com/blogem/timesheet/middleware"
	"github.com/blogem/timesheet/repositories"
	"github.com/blogem/timesheet/services"
)

func main() {
	// Load environment variables from .env file (optional; real env wins)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize database
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "timesheet.db"
	}
	if err := database.InitializeDatabase(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Get database connection
	db := database.GetDB()

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize services
	srvs := services.NewServices(repos)

	// Seed the first administrator account if configured and none exists
	if err := srvs.Auth.EnsureAdmin(
		context.Background(),
		os.Getenv("ADMIN_USERNAME"),
		os.Getenv("ADMIN_EMAIL"),
		os.Getenv("ADMIN_PASSWORD"),
	); err != nil {
		log.Fatalf("Failed to seed administrator: %v", err)
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	// Initialize optional single sign-on provider
	auth, err := setupSSOProvider()
	if err != nil {
		log.Fatalf("Failed to initialize SSO provider: %v", err)
	}

	// Set up router
	r, err := setupRouter(ctrl, srvs, repos, auth)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("🚀 Timesheet starting on port %s\n", port)
	fmt.Printf("📂 Visit: http://localhost:%s\n", port)
	fmt.Printf("🗃️  Database: %s\n", dbPath)

	log.Fatal(http.ListenAndServe(":"+port, r))
}

// setupSSOProvider builds the OpenID Connect provider when SSO is enabled.
// Returns nil when disabled; password login always works.
func setupSSOProvider() (authenticator.Provider, error) {
	if os.Getenv("SSO_ENABLED") != "true" {
		return nil, nil
	}

	return authenticator.NewOpenIDProvider(authenticator.OpenIDConfig{
		IssuerURL:    os.Getenv("SSO_ISSUER_URL"),
		ClientID:     os.Getenv("SSO_CLIENT_ID"),
		ClientSecret: os.Getenv("SSO_CLIENT_SECRET"),
		CallbackURL:  os.Getenv("SSO_CALLBACK_URL"),
	})
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, srvs *services.Services, repos *repositories.Repositories, auth authenticator.Provider) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks
	r.Use(middleware.Compress(5))

	// Determine if we should use secure cookies (HTTPS)
	useSecureCookies := os.Getenv("USE_HTTPS") == "true"

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "timesheet_session",
		Secure:         useSecureCookies, // Set to true when USE_HTTPS=true (production)
		Gclifetime:     3600,             // Session lifetime in seconds
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static/"))))

	// PUBLIC ROUTES (no authentication required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.AuditLogger(repos.Audit))

		r.Get("/", ctrl.Dashboard.Home)
		r.Get("/login", ctrl.Auth.ShowLogin)
		r.Post("/login", ctrl.Auth.Login)
		r.Get("/logout", ctrl.Auth.Logout)
		r.Get("/request-access", ctrl.AccessRequest.Show)
		r.Post("/request-access", ctrl.AccessRequest.Submit)

		if auth != nil {
			r.Get("/sso/login", ctrl.Auth.SSOLogin(auth))
			r.Get("/sso/callback", ctrl.Auth.SSOCallback(auth))
		}

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `{"status": "healthy", "service": "timesheet"}`)
		})
	})

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth)
		r.Use(authmiddleware.AuditLogger(repos.Audit))

		// Employee dashboard
		r.Get("/dashboard", ctrl.Dashboard.Index)
		r.Get("/dashboard/add", ctrl.Dashboard.NewEntry)
		r.Post("/dashboard/add", ctrl.Dashboard.CreateEntry)

		// CSV export: own timesheet, or any by ID for administrators
		r.Get("/export", ctrl.Export.ExportOwn)
		r.Get("/export/{id}", ctrl.Export.Export)

		// Admin pages
		r.Route("/admin", func(r chi.Router) {
			r.Use(authmiddleware.RequireAdmin(srvs.Auth))

			r.Get("/employees", ctrl.Admin.Employees)
			r.Get("/employees/{id}", ctrl.Admin.Timesheet)
			r.Get("/delete", ctrl.Admin.DeleteForm)
			r.Post("/delete", ctrl.Admin.Delete)
		})
	})

	return r, nil
}
