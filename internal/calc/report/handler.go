package report

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/phpdave11/gofpdf"

	"Ampere/internal/api"
	"Ampere/internal/logging"
)

type Input struct {
	Project         string         `json:"project"`
	Author          string         `json:"author"`
	InputParameters map[string]any `json:"inputParameters"`
	Results         map[string]any `json:"results"`
}

// Auditor records a completed PDF export. A nil Auditor disables auditing.
type Auditor interface {
	LogExport(r *http.Request, calculator string)
}

type Handler struct {
	Auditor Auditor
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["calculator"]
	m, ok := calculators[name]
	if !ok {
		api.WriteError(w, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", name))
		return
	}

	var input Input
	if !api.Decode(w, r, &input) {
		return
	}
	if input.InputParameters == nil || input.Results == nil {
		api.WriteError(w, http.StatusBadRequest, "inputParameters and results are required")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, m.title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if input.Project != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
		pdf.Ln(6)
	}
	if input.Author != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Input Parameters")
	kvTable(pdf, input.InputParameters)

	section(pdf, "Formulas")
	pdf.SetFont("Courier", "", 10)
	for _, line := range m.formulas(input.InputParameters, input.Results) {
		pdf.MultiCell(0, 5, line, "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(4)

	section(pdf, "Results")
	kvTable(pdf, input.Results)

	section(pdf, "Standards References")
	pdf.SetFont("Helvetica", "", 10)
	for _, s := range m.standards {
		pdf.Cell(0, 5, "- "+s)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	if warns, ok := input.Results["warnings"].([]any); ok && len(warns) > 0 {
		section(pdf, "Warnings")
		pdf.SetFont("Helvetica", "I", 10)
		for _, wmsg := range warns {
			pdf.MultiCell(0, 5, fmt.Sprintf("- %v", wmsg), "", "L", false)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"-report.pdf"))
	if err := pdf.Output(w); err != nil {
		logging.Logger.Error().Err(err).Str("calculator", name).Msg("pdf output")
		return
	}
	if h.Auditor != nil {
		h.Auditor.LogExport(r, name)
	}
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
}

// kvTable prints the flat scalar fields of a record; nested blocks are
// already covered by the formula lines.
func kvTable(pdf *gofpdf.Fpdf, m map[string]any) {
	pdf.SetFont("Helvetica", "", 10)
	for _, k := range sortedKeys(m) {
		switch m[k].(type) {
		case map[string]any, []any:
			continue
		}
		pdf.CellFormat(70, 5, k, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, num(m, k), "", 0, "L", false, 0, "")
		pdf.Ln(5)
	}
	pdf.Ln(4)
}
