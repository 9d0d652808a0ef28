package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"titanic/app"
	"titanic/internal/config"
	"titanic/internal/insights"
	"titanic/internal/theme"
	"titanic/ports"
	"titanic/ui/middleware"
	"titanic/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html templates/fragments/*.html static content
var embeddedFiles embed.FS

// Server represents the web server for the survival predictor
type Server struct {
	router    *gin.Engine
	templates *template.Template
	config    *config.Config
	pages     *app.PageRegistry
	predictor *app.PredictorController
	themes    *theme.Controller
	backends  ports.BackendFactory
	insights  insights.Aggregates
	about     template.HTML
}

// Deps are the collaborators the server is wired with
type Deps struct {
	Config    *config.Config
	Pages     *app.PageRegistry
	Predictor *app.PredictorController
	Themes    *theme.Controller
	Backends  ports.BackendFactory
	Insights  insights.Aggregates
}

// NewServer parses the embedded templates and sets up middleware and routes
func NewServer(deps Deps) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	about, err := renderAbout()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.New(),
		templates: templates,
		config:    deps.Config,
		pages:     deps.Pages,
		predictor: deps.Predictor,
		themes:    deps.Themes,
		backends:  deps.Backends,
		insights:  deps.Insights,
		about:     about,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"json": func(v interface{}) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
		"until": func(n int) []int {
			res := make([]int, n)
			for i := range res {
				res[i] = i
			}
			return res
		},
		"dict": func(pairs ...interface{}) (map[string]interface{}, error) {
			if len(pairs)%2 != 0 {
				return nil, fmt.Errorf("dict expects key/value pairs, got %d arguments", len(pairs))
			}
			m := make(map[string]interface{}, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
				}
				m[key] = pairs[i+1]
			}
			return m, nil
		},
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	for _, name := range fragments.GetAllTemplatePaths() {
		if templates.Lookup(name) == nil {
			return nil, fmt.Errorf("fragment template %s is not defined", name)
		}
	}
	return templates, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger(), gin.Recovery())
	s.router.Use(middleware.EnsureVisitor())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	// Pages
	s.router.GET("/", s.handleIndex)
	s.router.GET("/insights", s.handleInsights)
	s.router.GET("/insights/export", s.handleInsightsExport)
	s.router.GET("/about", s.handleAbout)

	// HTMX fragment endpoints
	s.router.POST("/fragments/predict", s.handleFragmentPredict)
	s.router.POST("/fragments/compare", s.handleFragmentCompare)

	// JSON API
	api := s.router.Group("/api")
	api.POST("/predict", s.handleAPIPredict)
	api.POST("/compare", s.handleAPICompare)
	api.POST("/mode/toggle", s.handleModeToggle)
	api.POST("/theme/toggle", s.handleThemeToggle)
	api.GET("/session/:id", s.handleSession)
	api.GET("/backend/health", s.handleBackendHealth)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Starting Titanic predictor on http://%s", addr)
	return s.router.Run(addr)
}
