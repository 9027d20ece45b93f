package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"groupstat/app"
	"groupstat/models"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App serves the browser front end and forwards JSON routes to the API engine
type App struct {
	router    *chi.Mux
	service   *app.ComputeService
	api       http.Handler
	templates *template.Template
	config    Config
}

// Config holds UI application configuration
type Config struct {
	Port         string
	HistoryLimit int
}

// NewApp creates a new UI application
func NewApp(config Config, service *app.ComputeService, api http.Handler) (*App, error) {
	funcMap := template.FuncMap{
		"fmt4": func(v float64) string { return fmt.Sprintf("%.4f", v) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		service:   service,
		api:       api,
		templates: templates,
		config:    config,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)

	static, _ := fs.Sub(embeddedFiles, "static")
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// JSON API
	a.router.Mount("/api", a.api)
	a.router.Handle("/healthz", a.api)
}

// Handler exposes the configured router
func (a *App) Handler() http.Handler {
	return a.router
}

// Addr returns the listen address for the configured port
func (a *App) Addr() string {
	return ":" + a.config.Port
}

type indexPage struct {
	Recent []*models.Computation
	Error  string
}

// handleIndex renders the calculator page with recent computations
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{}
	recent, err := a.service.ListRecent(r.Context(), a.config.HistoryLimit)
	if err != nil {
		log.Printf("[UI] Failed to load history: %v", err)
		page.Error = "History unavailable"
	} else {
		page.Recent = recent
	}
	a.renderTemplate(w, "index.html", page)
}

func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("[UI] Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
