package upstream

import (
	"encoding/json"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Envelope is the canonical list response shape. Upstream list payloads vary
// (envelope-level total, nested pagination.total, or no total at all); this
// type is the single shape the rest of the system sees. Data is always an
// array and Total always numeric.
type Envelope struct {
	Success    bool  `json:"success"`
	Data       []any `json:"data"`
	Total      int   `json:"total"`
	Pagination any   `json:"pagination,omitempty"`
}

// total lookup expressions, in resolution order.
const (
	exprTotal           = "total"
	exprPaginationTotal = "pagination.total"
)

// NormalizeList absorbs the variance in upstream list payloads:
//   - Data is the upstream data field when it is an array, else empty.
//   - Total resolves from the envelope total, then pagination.total, then
//     the length of the (normalized) data array.
//   - Pagination is passed through untouched when present.
//
// Malformed or non-object bodies normalize to an empty successful envelope;
// upstream failures are handled before this point.
func NormalizeList(body []byte) Envelope {
	env := Envelope{Success: true, Data: []any{}}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return env
	}

	if data, ok := payload["data"].([]any); ok {
		env.Data = data
	}
	env.Pagination = payload["pagination"]

	if total, ok := searchTotal(exprTotal, payload); ok {
		env.Total = total
	} else if total, ok := searchTotal(exprPaginationTotal, payload); ok {
		env.Total = total
	} else {
		env.Total = len(env.Data)
	}

	return env
}

// searchTotal evaluates a JMESPath expression against the payload and
// reports whether it yielded a numeric value.
func searchTotal(expr string, payload map[string]any) (int, bool) {
	v, err := jmespath.Search(expr, payload)
	if err != nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
