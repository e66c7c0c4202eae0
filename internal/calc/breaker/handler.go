package breaker

import (
	"net/http"

	"Ampere/internal/api"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if !api.Decode(w, r, &input) {
		return
	}
	findings := Validate(input)
	if findings.HasErrors() {
		api.WriteFindings(w, findings)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	res.Warnings = append(res.Warnings, findings.Warnings()...)
	api.WriteJSON(w, http.StatusOK, res)
}
