package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"stunden/internal/log"
)

const dateLayout = "2006-01-02"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "encode response",
			log.FieldError, err,
			log.FieldPath, r.URL.Path,
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// parseDatePath parses the {date} path value in YYYY-MM-DD form,
// anchored to the server's local zone.
func parseDatePath(r *http.Request) (time.Time, error) {
	return time.ParseInLocation(dateLayout, r.PathValue("date"), time.Local)
}

// parseYearMonthPath parses the {year} and {month} path values.
func parseYearMonthPath(r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year < 1 || year > 9999 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}
