package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// headers are already sent; nothing left to do
			return
		}
	}
}

// parseIDParam extracts a uint URL parameter or writes a bad_request error.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// writeRepoError maps a repository failure onto the API error envelope:
// gorm.ErrRecordNotFound becomes not_found, anything else internal_error.
func writeRepoError(w http.ResponseWriter, err error, notFoundDetail string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, notFoundDetail)
		return
	}
	WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, err.Error())
}
