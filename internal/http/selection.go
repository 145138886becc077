package http

import (
	"net/http"
	"net/url"

	"salesdash/internal/core"
)

// Query parameters carrying the month filter. The form always submits
// filtered=1 so that unticking every month is distinguishable from a first
// visit, which selects everything.
const (
	paramMonth    = "month"
	paramFiltered = "filtered"
)

// parseSelection reads the month filter from the query string. Months not in
// the dataset are dropped.
func parseSelection(r *http.Request, months []string) core.Selection {
	q := r.URL.Query()
	if q.Get(paramFiltered) != "1" {
		return core.NewSelection(months...)
	}

	known := core.NewSelection(months...)
	sel := core.NewSelection()
	for _, m := range q[paramMonth] {
		if known.Contains(m) {
			sel.Add(m)
		}
	}
	return sel
}

// selectionQuery encodes sel so that parseSelection gives it back. Selecting
// every month encodes as the empty query.
func selectionQuery(sel core.Selection, months []string) string {
	if sel.Len() == len(months) {
		return ""
	}
	v := url.Values{}
	v.Set(paramFiltered, "1")
	for _, m := range selectedInOrder(sel, months) {
		v.Add(paramMonth, m)
	}
	return v.Encode()
}

// selectedInOrder lists the selected months in dataset order.
func selectedInOrder(sel core.Selection, months []string) []string {
	out := make([]string, 0, sel.Len())
	for _, m := range months {
		if sel.Contains(m) {
			out = append(out, m)
		}
	}
	return out
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}
