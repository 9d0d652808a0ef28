package ui

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"titanic/adapters/predictapi"
	"titanic/app"
	"titanic/domain/passenger"
	"titanic/internal/config"
	"titanic/internal/insights"
	"titanic/internal/theme"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend serves /predict like the model service: women get 0.82, men 0.25,
// and an age of 100 or more makes the model fail
func newBackend(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")

		var q passenger.Query
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid types in payload"})
			return
		}
		if q.Age >= 100 {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "model unavailable"})
			return
		}

		p := 0.25
		if q.Sex == 0 {
			p = 0.82
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"probability": p, "survived": p >= 0.5})
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestServer(t *testing.T, backendURL string) (*Server, *app.PageRegistry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Backend: config.BackendConfig{InjectedOrigin: backendURL, Timeout: 2 * time.Second},
		Reveal:  config.RevealConfig{Threshold: 0.1, RootMargin: "50px"},
	}
	pages := app.NewPageRegistry(time.Hour)
	backends := predictapi.Factory(cfg.Backend.Timeout)

	s, err := NewServer(Deps{
		Config:    cfg,
		Pages:     pages,
		Predictor: app.NewPredictorController(backends.Predictors()),
		Themes:    theme.NewController(nil),
		Backends:  backends,
		Insights:  insights.Default(),
	})
	require.NoError(t, err)
	return s, pages
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func cookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func singleForm(pageID, age, fare string) url.Values {
	return url.Values{
		"page_id":  {pageID},
		"pclass":   {"1"},
		"sex":      {"0"},
		"age":      {age},
		"sibsp":    {"0"},
		"parch":    {"0"},
		"fare":     {fare},
		"embarked": {"C"},
	}
}

func compareForm(pageID string) url.Values {
	form := url.Values{"page_id": {pageID}}
	for prefix, sex := range map[string]string{"p1_": "0", "p2_": "1"} {
		form.Set(prefix+"pclass", "3")
		form.Set(prefix+"sex", sex)
		form.Set(prefix+"age", "30")
		form.Set(prefix+"fare", "8.05")
	}
	return form
}

func TestIndexStartsPageSession(t *testing.T) {
	backend, _ := newBackend(t)
	s, pages := newTestServer(t, backend.URL)

	w := do(s, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Could You Have Survived?")
	assert.Contains(t, body, "Comparison Mode")
	assert.Contains(t, body, "chart-outcome-sex-")
	assert.Contains(t, body, `data-origin="`+backend.URL+`"`)
	assert.Contains(t, body, `<option value="3" selected>3rd Class</option>`)
	assert.Contains(t, body, `hx-indicator="#single-analyzing, #predict-spinner"`)
	assert.Contains(t, body, `id="predict-spinner"`)
	assert.Contains(t, body, `hx-indicator="#compare-analyzing, #compare-spinner"`)
	assert.Contains(t, body, `id="compare-spinner"`)
	assert.Equal(t, theme.HintHeader, w.Header().Get("Accept-CH"))
	assert.Equal(t, 1, pages.Len())
	assert.NotNil(t, cookie(w, "visitor_id"))
}

func TestIndexHonorsColorSchemeHint(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(theme.HintHeader, "light")
	w := do(s, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<html lang="en" class="theme-light">`)
	assert.Contains(t, w.Body.String(), `<span id="theme-toggle-label">Night</span>`)
}

func TestFragmentPredict(t *testing.T) {
	backend, hits := newBackend(t)
	s, pages := newTestServer(t, backend.URL)
	page := pages.Create(backend.URL, "dark")

	w := do(s, postForm("/fragments/predict", singleForm(page.ID.String(), "29", "32.2")))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "82.0%")
	assert.Contains(t, body, "Likely Survived")
	assert.Contains(t, body, "glow-survived")
	assert.Contains(t, body, `id="single-error"`)
	assert.EqualValues(t, 1, hits.Load())
	assert.False(t, page.Controls(app.FormSingle).SubmitDisabled)
}

func TestFragmentPredictValidation(t *testing.T) {
	backend, hits := newBackend(t)
	s, pages := newTestServer(t, backend.URL)
	page := pages.Create(backend.URL, "dark")

	w := do(s, postForm("/fragments/predict", singleForm(page.ID.String(), "abc", "32.2")))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "#single-error", w.Header().Get("HX-Retarget"))
	assert.Equal(t, "innerHTML", w.Header().Get("HX-Reswap"))
	assert.Equal(t, "Please enter a valid numeric value for Age.", w.Body.String())
	assert.EqualValues(t, 0, hits.Load())
}

func TestFragmentPredictFailure(t *testing.T) {
	backend, _ := newBackend(t)
	s, pages := newTestServer(t, backend.URL)
	page := pages.Create(backend.URL, "dark")

	w := do(s, postForm("/fragments/predict", singleForm(page.ID.String(), "120", "32.2")))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Unable to get prediction")
	assert.Contains(t, body, "Please check your connection and try again")
	assert.Contains(t, body, "Prediction failed: model unavailable. Is the backend running at "+backend.URL+"?")
	assert.Contains(t, body, `hx-swap-oob="true"`)
}

func TestFragmentPredictUnknownPage(t *testing.T) {
	backend, hits := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	w := do(s, postForm("/fragments/predict", singleForm("0190f5c2-7d3e-7a1b-9c4d-5e6f7a8b9c0d", "29", "10")))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "#single-error", w.Header().Get("HX-Retarget"))
	assert.EqualValues(t, 0, hits.Load())
}

func TestFragmentCompareReplacesChart(t *testing.T) {
	backend, hits := newBackend(t)
	s, pages := newTestServer(t, backend.URL)
	page := pages.Create(backend.URL, "dark")

	first := do(s, postForm("/fragments/compare", compareForm(page.ID.String())))
	require.Equal(t, http.StatusOK, first.Code)
	body := first.Body.String()
	assert.Contains(t, body, "82.0%")
	assert.Contains(t, body, "25.0%")
	assert.Contains(t, body, "57.0%")
	assert.Contains(t, body, "<strong>Person 1</strong> has the better chance")
	assert.Contains(t, body, "data-chart")
	assert.Contains(t, body, `id="compare-error"`)

	firstChart, ok := page.ChartSlot().Current()
	require.True(t, ok)
	assert.Empty(t, firstChart.Release)

	second := do(s, postForm("/fragments/compare", compareForm(page.ID.String())))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), `data-release="`+firstChart.ID.String()+`"`)

	assert.Equal(t, 1, page.ChartSlot().Live())
	assert.EqualValues(t, 4, hits.Load())
}

func TestFragmentCompareValidation(t *testing.T) {
	backend, hits := newBackend(t)
	s, pages := newTestServer(t, backend.URL)
	page := pages.Create(backend.URL, "dark")

	form := compareForm(page.ID.String())
	form.Set("p2_fare", "")
	w := do(s, postForm("/fragments/compare", form))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "#compare-error", w.Header().Get("HX-Retarget"))
	assert.Contains(t, w.Body.String(), "for both people")
	assert.EqualValues(t, 0, hits.Load())
	assert.Equal(t, 0, page.ChartSlot().Live())
}

func TestAPIPredict(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	w := do(s, postJSON("/api/predict", `{"passenger":{"pclass":"3","sex":"1","age":"22","fare":"7.25"}}`))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	result := out["result"].(map[string]interface{})
	assert.Equal(t, "25.0", result["percent"])
	assert.Equal(t, "Likely Perished", result["label"])
	assert.Equal(t, "The model estimates a 25.0% chance of survival.", result["message"])
	assert.NotEmpty(t, out["page_id"])
}

func TestAPIPredictValidation(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	w := do(s, postJSON("/api/predict", `{"passenger":{"age":"","fare":"x"}}`))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	out := decode(t, w)
	assert.Equal(t, "VALIDATION_ERROR", out["code"])
	assert.Equal(t, "Please enter valid numeric values for Age and Fare.", out["error"])
}

func TestAPIPredictBadBody(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	w := do(s, postJSON("/api/predict", `{`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPICompare(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	w := do(s, postJSON("/api/compare", `{
		"person1": {"sex": "1", "age": "40", "fare": "8"},
		"person2": {"sex": "0", "age": "40", "fare": "8"}
	}`))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode(t, w)["result"].(map[string]interface{})
	assert.Equal(t, "Person 2", result["better_chance"])
	assert.Equal(t, "57.0", result["difference"])
	chart := result["chart"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(chart["id"].(string), "comparison-"))
}

func TestAPICompareFailureFailsWhole(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	w := do(s, postJSON("/api/compare", `{
		"person1": {"age": "30", "fare": "8"},
		"person2": {"age": "150", "fare": "8"}
	}`))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	out := decode(t, w)
	assert.Nil(t, out["result"])
	failure := out["failure"].(map[string]interface{})
	assert.Equal(t, "Unable to compare predictions", failure["title"])
	assert.Contains(t, failure["message"], "Comparison failed: model unavailable.")
}

func TestModeToggle(t *testing.T) {
	backend, _ := newBackend(t)
	s, pages := newTestServer(t, backend.URL)
	page := pages.Create(backend.URL, "dark")

	w := do(s, postJSON("/api/mode/toggle", `{"page_id":"`+page.ID.String()+`"}`))
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, "comparison", out["mode"])
	assert.Equal(t, "Compare Survival Predictions", out["title"])
	assert.Equal(t, "Single Mode", out["toggle_label"])
	assert.Equal(t, true, out["show_comparison"])
	assert.Equal(t, false, out["show_single"])

	w = do(s, postJSON("/api/mode/toggle", `{"page_id":"`+page.ID.String()+`"}`))
	assert.Equal(t, "single", decode(t, w)["mode"])
}

func TestModeToggleErrors(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	assert.Equal(t, http.StatusBadRequest, do(s, postJSON("/api/mode/toggle", `{}`)).Code)
	assert.Equal(t, http.StatusBadRequest, do(s, postJSON("/api/mode/toggle", `{"page_id":"nope"}`)).Code)
	assert.Equal(t, http.StatusNotFound,
		do(s, postJSON("/api/mode/toggle", `{"page_id":"0190f5c2-7d3e-7a1b-9c4d-5e6f7a8b9c0d"}`)).Code)
}

func TestThemeToggle(t *testing.T) {
	backend, _ := newBackend(t)
	s, pages := newTestServer(t, backend.URL)
	page := pages.Create(backend.URL, "dark")

	w := do(s, postJSON("/api/theme/toggle", `{"page_id":"`+page.ID.String()+`"}`))

	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, "light", out["theme"])
	assert.Equal(t, "Night", out["label"])
	assert.Equal(t, "theme-light", out["root_class"])
	assert.Equal(t, "light", page.ChartTheme())

	c := cookie(w, theme.CookieName)
	require.NotNil(t, c)
	assert.Equal(t, "light", c.Value)

	req := postJSON("/api/theme/toggle", `{}`)
	req.AddCookie(&http.Cookie{Name: theme.CookieName, Value: "light"})
	out = decode(t, do(s, req))
	assert.Equal(t, "dark", out["theme"])
	assert.Equal(t, "Day", out["label"])
	assert.Equal(t, "", out["root_class"])
}

func TestSessionSnapshot(t *testing.T) {
	backend, _ := newBackend(t)
	s, pages := newTestServer(t, backend.URL)
	page := pages.Create(backend.URL, "dark")

	w := do(s, httptest.NewRequest(http.MethodGet, "/api/session/"+page.ID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, page.ID.String(), out["id"])
	assert.Equal(t, backend.URL, out["origin"])
	assert.EqualValues(t, 0, out["live_charts"])

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/session/garbage", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBackendHealth(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	w := do(s, httptest.NewRequest(http.MethodGet, "/api/backend/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	s, _ = newTestServer(t, deadURL)
	w = do(s, httptest.NewRequest(http.MethodGet, "/api/backend/health", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	out := decode(t, w)
	assert.Equal(t, "unavailable", out["status"])
	assert.Equal(t, deadURL, out["origin"])
}

func TestInsightsPages(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	w := do(s, httptest.NewRequest(http.MethodGet, "/insights", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Survival Insights")
	assert.Contains(t, w.Body.String(), "from built-in.")
	assert.Contains(t, w.Body.String(), "chart-family-")
	assert.Contains(t, w.Body.String(), "<td>512.33</td>")

	w = do(s, httptest.NewRequest(http.MethodGet, "/insights/export", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Survival Rate by Family Size")
}

func TestAboutPage(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	w := do(s, httptest.NewRequest(http.MethodGet, "/about", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "About the Model")
	assert.Contains(t, body, `target="_blank"`)
	assert.Contains(t, body, "<table>")
}

func TestStaticAssets(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	w := do(s, httptest.NewRequest(http.MethodGet, "/static/js/app.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "data-chart")
	assert.Contains(t, w.Body.String(), "getResponseHeader('HX-Retarget')")
}

func TestFragmentRenderErrorIsRetargeted(t *testing.T) {
	backend, _ := newBackend(t)
	s, _ := newTestServer(t, backend.URL)

	out := newFragmentPresenter(s.templates, app.FormCompare)
	out.renderErr = stderrors.New("template: missing field")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	s.writeFragment(c, out)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "#compare-error", w.Header().Get("HX-Retarget"))
	assert.Equal(t, "innerHTML", w.Header().Get("HX-Reswap"))
	assert.Equal(t, "Unable to display the result.", w.Body.String())
}

func TestAdminRouter(t *testing.T) {
	pages := app.NewPageRegistry(time.Hour)
	pages.Create("http://127.0.0.1:5002", "dark")

	w := httptest.NewRecorder()
	NewAdminRouter(pages).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "ok", out["status"])
	assert.EqualValues(t, 1, out["pages"])
}
