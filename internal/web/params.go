// AngelaMos | 2026
// params.go

package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// IDParam reads a positive integer route parameter.
func IDParam(r *http.Request, name string) (int64, bool) {
	return ParseID(chi.URLParam(r, name))
}

func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
