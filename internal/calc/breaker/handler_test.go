package breaker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerCalc(t *testing.T) {
	h := &Handler{}

	t.Run("success", func(t *testing.T) {
		body := `{"standard":"NEC","phase":"single","voltage_v":230,"load_kw":3.68,"power_factor":1.0,"continuous":true}`
		req := httptest.NewRequest(http.MethodPost, "/api/breaker/calculate", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Calc(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var res Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, 20.0, res.SelectedSizeA)
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		body := `{"standard":"NEC","phase":"single","voltage_v":12,"load_kw":0,"power_factor":1.0}`
		req := httptest.NewRequest(http.MethodPost, "/api/breaker/calculate", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Calc(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var res struct {
			Error   string `json:"error"`
			Details []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"details"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "validation failed", res.Error)
		require.Len(t, res.Details, 2)
		fields := []string{res.Details[0].Field, res.Details[1].Field}
		assert.Contains(t, fields, "voltage_v")
		assert.Contains(t, fields, "load_kw")
	})

	t.Run("malformed payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/breaker/calculate", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		h.Calc(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("domain rejection above largest size", func(t *testing.T) {
		body := `{"standard":"IEC","phase":"single","voltage_v":230,"load_kw":300,"power_factor":1.0}`
		req := httptest.NewRequest(http.MethodPost, "/api/breaker/calculate", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Calc(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "largest")
	})
}
