package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/rsu-vesting/internal/middleware"
	"github.com/ArowuTest/rsu-vesting/internal/models"
	"github.com/ArowuTest/rsu-vesting/internal/services"
)

//go:embed templates/index.html
var templateFS embed.FS

// IndexTemplate is the template name rendered by PageHandler
const IndexTemplate = "index.html"

// Form defaults
const (
	defaultDurationYears = 5
	defaultCliffYears    = 0
	// the form takes the total value in thousands
	formValueUnit = 1000
)

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/"+IndexTemplate))
}

// formValues keeps the raw form input so a rejected submission is shown back
// to the user as typed.
type formValues struct {
	Name          string
	GrantDate     string
	TotalValue    string
	DurationYears string
	CliffYears    string
	Variant       string
}

type pageData struct {
	Error  string
	Form   formValues
	Awards []*models.Award
}

// PageHandler serves the HTML calculator form
type PageHandler struct {
	awardService services.AwardService
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(awardService services.AwardService) *PageHandler {
	return &PageHandler{awardService: awardService}
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, pageData{Form: formValues{
		DurationYears: strconv.Itoa(defaultDurationYears),
		CliffYears:    strconv.Itoa(defaultCliffYears),
	}})
}

// SubmitForm handles POST /awards. On success it redirects back to the form;
// on failure the form is shown again with the error and the stored awards
// unchanged.
func (h *PageHandler) SubmitForm(c *gin.Context) {
	form := formValues{
		Name:          c.PostForm("name"),
		GrantDate:     c.PostForm("grantDate"),
		TotalValue:    c.PostForm("totalValue"),
		DurationYears: c.DefaultPostForm("durationYears", strconv.Itoa(defaultDurationYears)),
		CliffYears:    c.DefaultPostForm("cliffYears", strconv.Itoa(defaultCliffYears)),
		Variant:       c.PostForm("variant"),
	}

	req, err := form.request()
	if err != nil {
		h.render(c, http.StatusBadRequest, pageData{Error: err.Error(), Form: form})
		return
	}

	if _, err := h.awardService.Submit(c, middleware.SessionID(c), req); err != nil {
		status := errorStatus(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			msg = "The award could not be saved, please try again"
		}
		h.render(c, status, pageData{Error: msg, Form: form})
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (f formValues) request() (*models.AwardRequest, error) {
	req := &models.AwardRequest{
		Name:      f.Name,
		GrantDate: f.GrantDate,
		Variant:   f.Variant,
	}
	var err error
	if f.TotalValue != "" {
		if req.TotalValue, err = strconv.ParseFloat(f.TotalValue, 64); err != nil {
			return nil, errInvalidField("total value")
		}
		req.TotalValue *= formValueUnit
	}
	if req.DurationYears, err = strconv.Atoi(f.DurationYears); err != nil {
		return nil, errInvalidField("duration")
	}
	if req.CliffYears, err = strconv.Atoi(f.CliffYears); err != nil {
		return nil, errInvalidField("cliff")
	}
	return req, nil
}

type errInvalidField string

func (e errInvalidField) Error() string {
	return string(e) + " must be a number"
}

func (h *PageHandler) render(c *gin.Context, status int, data pageData) {
	awards, err := h.awardService.List(c, middleware.SessionID(c))
	if err != nil {
		respondError(c, "List awards", err)
		return
	}
	data.Awards = awards
	c.HTML(status, IndexTemplate, data)
}
