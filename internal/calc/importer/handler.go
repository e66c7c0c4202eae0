package importer

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Ampere/internal/api"
	"Ampere/internal/calc/demand"
)

type Handler struct{}

type DemandImportResult struct {
	RowsRead int           `json:"rows_read"`
	Skipped  int           `json:"skipped"`
	Result   demand.Result `json:"result"`
}

// Demand reads an xlsx load schedule (category, connected kW per row, header
// in row 1) and evaluates it through the demand calculator. The standard
// comes from the "standard" form field.
func (h *Handler) Demand(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	std := demand.Standard(r.FormValue("standard"))
	if std == "" {
		std = demand.StandardIECResidential
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid xlsx file")
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		api.WriteError(w, http.StatusBadRequest, "empty sheet")
		return
	}

	input := demand.Input{Standard: std}
	skipped := 0
	for i := 1; i < len(rows); i++ {
		load, err := parseLoadRow(rows[i])
		if err != nil {
			skipped++
			continue
		}
		input.Loads = append(input.Loads, load)
	}
	if len(input.Loads) == 0 {
		api.WriteError(w, http.StatusBadRequest, "no usable rows in sheet")
		return
	}

	if findings := demand.Validate(input); findings.HasErrors() {
		api.WriteFindings(w, findings)
		return
	}
	res, err := demand.Calculate(input)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	api.WriteJSON(w, http.StatusOK, DemandImportResult{
		RowsRead: len(input.Loads),
		Skipped:  skipped,
		Result:   res,
	})
}

func parseLoadRow(row []string) (demand.Load, error) {
	if len(row) < 2 {
		return demand.Load{}, fmt.Errorf("bad row")
	}
	category := strings.ToLower(strings.TrimSpace(row[0]))
	kw, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return demand.Load{}, err
	}
	return demand.Load{Category: demand.Category(category), ConnectedKW: kw}, nil
}
