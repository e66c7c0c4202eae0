package report

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAuditor struct {
	calculators []string
}

func (a *recordingAuditor) LogExport(_ *http.Request, calculator string) {
	a.calculators = append(a.calculators, calculator)
}

func reportRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/{calculator}/generate-report", h.Generate).Methods(http.MethodPost)
	return r
}

func TestGenerate(t *testing.T) {
	auditor := &recordingAuditor{}
	router := reportRouter(&Handler{Auditor: auditor})

	body := `{
		"project": "Substation 12",
		"author": "R. Diaz",
		"inputParameters": {"voltage_v": 230, "load_kw": 3.312, "power_factor": 0.9},
		"results": {"selected_size_a": 20, "warnings": ["loading above 80%"]}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/breaker/generate-report", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "breaker-report.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	assert.Equal(t, []string{"breaker"}, auditor.calculators)
}

func TestGenerateNilAuditor(t *testing.T) {
	router := reportRouter(&Handler{})
	body := `{"inputParameters": {"load_kw": 2}, "results": {"hours": 3.456}}`
	req := httptest.NewRequest(http.MethodPost, "/api/battery/generate-report", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateUnknownCalculator(t *testing.T) {
	router := reportRouter(&Handler{})
	req := httptest.NewRequest(http.MethodPost, "/api/flux-capacitor/generate-report", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateMissingSections(t *testing.T) {
	router := reportRouter(&Handler{})
	req := httptest.NewRequest(http.MethodPost, "/api/breaker/generate-report", strings.NewReader(`{"project": "x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "inputParameters")
}

func TestKnown(t *testing.T) {
	for _, name := range []string{
		"battery", "ups", "cable", "breaker", "earthing", "arrester",
		"demand", "lighting", "solar", "power", "basics",
	} {
		assert.True(t, Known(name), name)
	}
	assert.False(t, Known("flux-capacitor"))
}
