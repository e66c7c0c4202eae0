package validate

import "fmt"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single field-level validation outcome. Errors block the
// calculation, warnings travel with the result.
type Finding struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

type Findings []Finding

func (f Findings) HasErrors() bool {
	for _, x := range f {
		if x.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the blocking findings.
func (f Findings) Errors() Findings {
	var out Findings
	for _, x := range f {
		if x.Severity == SeverityError {
			out = append(out, x)
		}
	}
	return out
}

// Warnings returns the warning messages for attachment to a result.
func (f Findings) Warnings() []string {
	var out []string
	for _, x := range f {
		if x.Severity == SeverityWarning {
			out = append(out, x.Message)
		}
	}
	return out
}

func Errorf(field, format string, args ...any) Finding {
	return Finding{Field: field, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

func Warnf(field, format string, args ...any) Finding {
	return Finding{Field: field, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning}
}

// Require adds an error when a numeric field is not strictly positive.
func Require(f Findings, field string, v float64) Findings {
	if v <= 0 {
		return append(f, Errorf(field, "must be greater than zero"))
	}
	return f
}

// Range adds an error when v is outside [min, max].
func Range(f Findings, field string, v, min, max float64) Findings {
	if v < min || v > max {
		return append(f, Errorf(field, "must be between %g and %g", min, max))
	}
	return f
}
