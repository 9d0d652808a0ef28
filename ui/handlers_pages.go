package ui

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"titanic/app"
	"titanic/internal/chart"
	"titanic/internal/config"
	"titanic/internal/insights"
	"titanic/internal/theme"
	"titanic/internal/view"
	"titanic/ui/middleware"

	"github.com/gin-gonic/gin"
)

// BackendCookie holds a backend origin the browser persisted. It is read, never written.
const BackendCookie = "backend_url"

// PageData is shared by every full page
type PageData struct {
	Title      string
	Active     string
	Theme      theme.Theme
	ThemeLabel string
	RootClass  string
	Reveal     view.RevealOptions
}

// IndexData renders the predictor page
type IndexData struct {
	PageData
	PageID   string
	Origin   string
	Mode     view.ModeView
	Charts   []chart.Snippet
	Defaults FormDefaults
}

// FormDefaults preselects the select-backed inputs
type FormDefaults struct {
	Pclass   int
	Sex      int
	Sibsp    int
	Parch    int
	Embarked string
}

// InsightsData renders the insights page
type InsightsData struct {
	PageData
	Source    string
	Charts    []chart.Snippet
	Summaries []insights.ColumnSummary
}

// AboutData renders the about page
type AboutData struct {
	PageData
	Content template.HTML
}

func (s *Server) resolveTheme(c *gin.Context) theme.Theme {
	cookie, _ := c.Cookie(theme.CookieName)
	return s.themes.Resolve(c.Request.Context(), middleware.Visitor(c), cookie, c.GetHeader(theme.HintHeader))
}

func (s *Server) backendOrigin(c *gin.Context) string {
	persisted, _ := c.Cookie(BackendCookie)
	return config.ResolveBackendOrigin(s.config.Backend.InjectedOrigin, persisted)
}

func (s *Server) pageData(c *gin.Context, title, active string) PageData {
	c.Header("Accept-CH", theme.HintHeader)
	t := s.resolveTheme(c)
	return PageData{
		Title:      title,
		Active:     active,
		Theme:      t,
		ThemeLabel: t.Label(),
		RootClass:  t.RootClass(),
		Reveal:     view.RevealFromConfig(s.config.Reveal),
	}
}

// handleIndex serves the predictor page and starts its page session
func (s *Server) handleIndex(c *gin.Context) {
	data := IndexData{PageData: s.pageData(c, "Titanic Survival Predictor", "predictor")}

	charts, err := chart.RenderAll(s.insights.Outcomes, data.Theme.String())
	if err != nil {
		log.Printf("[handleIndex] Error rendering outcome charts: %v", err)
		c.String(http.StatusInternalServerError, "Failed to render charts")
		return
	}

	page := s.pages.Create(s.backendOrigin(c), data.Theme.String())
	log.Printf("[handleIndex] Started page session %s against %s", page.ID, page.Origin)

	data.PageID = page.ID.String()
	data.Origin = page.Origin
	data.Mode = page.ModeView()
	data.Charts = charts
	data.Defaults = defaultForm()

	s.renderTemplate(c, http.StatusOK, "index.html", data)
}

// handleInsights serves the survival-rate charts
func (s *Server) handleInsights(c *gin.Context) {
	data := InsightsData{
		PageData:  s.pageData(c, "Survival Insights", "insights"),
		Source:    s.insights.Source,
		Summaries: s.insights.Summaries,
	}

	charts, err := chart.RenderAll(s.insights.Rates, data.Theme.String())
	if err != nil {
		log.Printf("[handleInsights] Error rendering rate charts: %v", err)
		c.String(http.StatusInternalServerError, "Failed to render charts")
		return
	}
	data.Charts = charts

	s.renderTemplate(c, http.StatusOK, "insights.html", data)
}

// handleInsightsExport serves every chart as one standalone go-echarts page
func (s *Server) handleInsightsExport(c *gin.Context) {
	page, err := chart.Page(s.insights, s.resolveTheme(c).String())
	if err != nil {
		log.Printf("[handleInsightsExport] Error building chart page: %v", err)
		c.String(http.StatusInternalServerError, "Failed to render charts")
		return
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		log.Printf("[handleInsightsExport] Error rendering chart page: %v", err)
		c.String(http.StatusInternalServerError, "Failed to render charts")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// handleAbout serves the about page
func (s *Server) handleAbout(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "about.html", AboutData{
		PageData: s.pageData(c, "About the Model", "about"),
		Content:  s.about,
	})
}

// pageFor returns the session named by id. Callers without a page id, such as scripts
// hitting the JSON API, get a transient session that is never registered.
func (s *Server) pageFor(c *gin.Context, id string) (*app.PageSession, error) {
	if id == "" {
		return app.NewPageSession(s.backendOrigin(c), s.resolveTheme(c).String()), nil
	}
	return s.pages.Get(id)
}
