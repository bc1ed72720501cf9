package apitest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

const pageSize = 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

// writeValidationError renders field errors as {"field": ["message"]}.
func writeValidationError(w http.ResponseWriter, err error) {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body := make(map[string][]string, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		body[field] = []string{fieldErr.Error()}
	}
	writeJSON(w, http.StatusBadRequest, body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("JSON parse error - %v", err))
		return false
	}
	return true
}

// paginate slices items the way the platform's page-number pagination does.
func paginate[T any](r *http.Request, items []T) (apimodel.Page[T], bool) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return apimodel.Page[T]{}, false
		}
		page = n
	}

	start := (page - 1) * pageSize
	if start > 0 && start >= len(items) {
		return apimodel.Page[T]{}, false
	}
	end := min(start+pageSize, len(items))

	out := apimodel.Page[T]{Count: len(items), Results: items[start:end]}
	if out.Results == nil {
		out.Results = []T{}
	}
	if end < len(items) {
		out.Next = pageLink(r, page+1)
	}
	if page > 1 {
		out.Previous = pageLink(r, page-1)
	}
	return out, true
}

func pageLink(r *http.Request, page int) *string {
	q := r.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	link := "http://" + r.Host + r.URL.Path
	if encoded := q.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return &link
}

func writePage[T any](w http.ResponseWriter, r *http.Request, items []T) {
	page, ok := paginate(r, items)
	if !ok {
		writeError(w, http.StatusNotFound, "Invalid page.")
		return
	}
	writeJSON(w, http.StatusOK, page)
}
