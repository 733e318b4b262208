package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ironledger/ironledger/internal/config"
	"github.com/ironledger/ironledger/internal/db"
	"github.com/ironledger/ironledger/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, repo, cfg.JWTSecret, cfg.TokenDuration, cfg.BcryptCost)
	compoundsHandler := NewCompoundsHandler(repo)
	dosesHandler := NewDosesHandler(repo, repo)
	dashboardHandler := NewDashboardHandler(repo, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/signin", authHandler.Signin).Methods("POST")

	// Session-gated endpoints
	auth := JWTAuthMiddlewareWithSecret(cfg.JWTSecret)

	r.Handle("/signout", auth(http.HandlerFunc(authHandler.Signout))).Methods("POST")
	r.Handle("/me", auth(http.HandlerFunc(authHandler.Me))).Methods("GET")

	compounds := r.PathPrefix("/compounds").Subrouter()
	compounds.Use(auth)
	compounds.HandleFunc("", compoundsHandler.ListCompounds).Methods("GET")
	compounds.HandleFunc("", compoundsHandler.CreateCompound).Methods("POST")
	compounds.HandleFunc("/{id}", compoundsHandler.GetCompound).Methods("GET")
	compounds.HandleFunc("/{id}", compoundsHandler.UpdateCompound).Methods("PATCH")
	compounds.HandleFunc("/{id}", compoundsHandler.DeleteCompound).Methods("DELETE")

	doses := r.PathPrefix("/doses").Subrouter()
	doses.Use(auth)
	doses.HandleFunc("", dosesHandler.ListDoses).Methods("GET")
	doses.HandleFunc("", dosesHandler.CreateDose).Methods("POST")
	doses.HandleFunc("/{id}", dosesHandler.GetDose).Methods("GET")
	doses.HandleFunc("/{id}", dosesHandler.UpdateDose).Methods("PATCH")
	doses.HandleFunc("/{id}", dosesHandler.DeleteDose).Methods("DELETE")

	dashboard := r.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(auth)
	dashboard.HandleFunc("/summary", dashboardHandler.Summary).Methods("GET")

	return r
}
