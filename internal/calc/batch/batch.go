package batch

import (
	"fmt"

	"Ampere/internal/calc/breaker"
	"Ampere/internal/validate"
)

type BreakerBatchInput struct {
	Items []breaker.Input `json:"items"`
}

type BreakerItemResult struct {
	Index  int             `json:"index"`
	Result *breaker.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type BreakerBatchResult struct {
	Count   int                 `json:"count"`
	Results []BreakerItemResult `json:"results"`
}

// CalculateBreaker sizes every item independently; a failing row reports its
// own error instead of aborting the batch.
func CalculateBreaker(in BreakerBatchInput) (BreakerBatchResult, error) {
	if len(in.Items) == 0 {
		return BreakerBatchResult{}, fmt.Errorf("no items")
	}
	out := BreakerBatchResult{Results: make([]BreakerItemResult, 0, len(in.Items))}
	for i, item := range in.Items {
		entry := BreakerItemResult{Index: i}
		if findings := breaker.Validate(item); findings.HasErrors() {
			entry.Error = firstError(findings)
		} else if res, err := breaker.Calculate(item); err != nil {
			entry.Error = err.Error()
		} else {
			res.Warnings = append(res.Warnings, findings.Warnings()...)
			entry.Result = &res
			out.Count++
		}
		out.Results = append(out.Results, entry)
	}
	return out, nil
}

func firstError(f validate.Findings) string {
	errs := f.Errors()
	return fmt.Sprintf("%s: %s", errs[0].Field, errs[0].Message)
}
