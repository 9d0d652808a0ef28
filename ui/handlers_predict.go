package ui

import (
	"html/template"
	"log"
	"net/http"

	"titanic/app"
	"titanic/domain/passenger"
	"titanic/internal/errors"
	"titanic/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

func defaultForm() FormDefaults {
	return FormDefaults{
		Pclass:   passenger.DefaultPclass,
		Sex:      passenger.DefaultSex,
		Sibsp:    passenger.DefaultSibsp,
		Parch:    passenger.DefaultParch,
		Embarked: passenger.DefaultEmbarked,
	}
}

// formFields reads one person's inputs; the comparison form prefixes them with p1_ and p2_
func formFields(c *gin.Context, prefix string) passenger.Fields {
	return passenger.Fields{
		Pclass:   c.PostForm(prefix + "pclass"),
		Sex:      c.PostForm(prefix + "sex"),
		Age:      c.PostForm(prefix + "age"),
		Sibsp:    c.PostForm(prefix + "sibsp"),
		Parch:    c.PostForm(prefix + "parch"),
		Fare:     c.PostForm(prefix + "fare"),
		Embarked: c.PostForm(prefix + "embarked"),
	}
}

// handleFragmentPredict runs a single prediction for the HTMX form
func (s *Server) handleFragmentPredict(c *gin.Context) {
	page, err := s.pageFor(c, c.PostForm("page_id"))
	if err != nil {
		s.writeFragmentError(c, app.FormSingle, err)
		return
	}

	out := newFragmentPresenter(s.templates, app.FormSingle)
	_ = s.predictor.PredictSurvival(c.Request.Context(), page, formFields(c, ""), out)
	s.writeFragment(c, out)
}

// handleFragmentCompare runs a comparison for the HTMX form
func (s *Server) handleFragmentCompare(c *gin.Context) {
	page, err := s.pageFor(c, c.PostForm("page_id"))
	if err != nil {
		s.writeFragmentError(c, app.FormCompare, err)
		return
	}

	out := newFragmentPresenter(s.templates, app.FormCompare)
	_ = s.predictor.ComparePredictions(c.Request.Context(), page, formFields(c, "p1_"), formFields(c, "p2_"), out)
	s.writeFragment(c, out)
}

// writeFragment sends what the presenter collected. Validation messages are retargeted
// to the form's error line so the result panel stays untouched.
func (s *Server) writeFragment(c *gin.Context, out *fragmentPresenter) {
	switch {
	case out.validation != "":
		s.writeErrorLine(c, out.form, http.StatusUnprocessableEntity, out.validation)
	case out.renderErr != nil:
		log.Printf("[Fragments] Template error: %v", out.renderErr)
		s.writeErrorLine(c, out.form, http.StatusInternalServerError, "Unable to display the result.")
	default:
		c.Data(http.StatusOK, "text/html; charset=utf-8", out.buf.Bytes())
	}
}

func (s *Server) writeFragmentError(c *gin.Context, form app.Form, err error) {
	log.Printf("[Fragments] Page lookup failed: %v", err)
	msg := "This page has expired. Reload to start a new session."
	if errors.HasCode(err, errors.CodeInvalidInput) {
		msg = "This page is missing its session. Reload and try again."
	}
	s.writeErrorLine(c, form, statusFor(err), msg)
}

func (s *Server) writeErrorLine(c *gin.Context, form app.Form, status int, msg string) {
	c.Header("HX-Retarget", "#"+fragments.ErrorTarget(string(form)))
	c.Header("HX-Reswap", "innerHTML")
	c.Data(status, "text/html; charset=utf-8", []byte(template.HTMLEscapeString(msg)))
}

type predictRequest struct {
	PageID    string           `json:"page_id"`
	Passenger passenger.Fields `json:"passenger"`
}

type compareRequest struct {
	PageID  string           `json:"page_id"`
	Person1 passenger.Fields `json:"person1"`
	Person2 passenger.Fields `json:"person2"`
}

// handleAPIPredict is the JSON flavor of the single prediction
func (s *Server) handleAPIPredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": errors.CodeInvalidInput})
		return
	}

	page, err := s.pageFor(c, req.PageID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}

	out := &jsonPresenter{}
	_ = s.predictor.PredictSurvival(c.Request.Context(), page, req.Passenger, out)
	writeJSONResult(c, page, out, out.single)
}

// handleAPICompare is the JSON flavor of the comparison
func (s *Server) handleAPICompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": errors.CodeInvalidInput})
		return
	}

	page, err := s.pageFor(c, req.PageID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}

	out := &jsonPresenter{}
	_ = s.predictor.ComparePredictions(c.Request.Context(), page, req.Person1, req.Person2, out)
	writeJSONResult(c, page, out, out.comparison)
}

func writeJSONResult(c *gin.Context, page *app.PageSession, out *jsonPresenter, result interface{}) {
	switch {
	case out.validation != "":
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": out.validation, "code": errors.CodeValidationError})
	case out.failure != nil:
		c.JSON(http.StatusBadGateway, gin.H{"page_id": page.ID, "failure": out.failure})
	default:
		c.JSON(http.StatusOK, gin.H{"page_id": page.ID, "result": result})
	}
}

// statusFor maps an application error code onto an HTTP status
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeValidationError:
		return http.StatusUnprocessableEntity
	case errors.CodeTransportError, errors.CodeMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
