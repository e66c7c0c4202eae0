package batch

import (
	"net/http"

	"Ampere/internal/api"
)

type Handler struct{}

func (h *Handler) Breaker(w http.ResponseWriter, r *http.Request) {
	var input BreakerBatchInput
	if !api.Decode(w, r, &input) {
		return
	}
	res, err := CalculateBreaker(input)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}
