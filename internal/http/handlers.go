package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"stunden/internal/core"
)

func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	date, err := parseDatePath(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	writeJSON(w, r, http.StatusOK, s.service.EntryForDay(date))
}

func (s *Server) handlePutDay(w http.ResponseWriter, r *http.Request) {
	date, err := parseDatePath(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	var entry core.TimeEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid entry payload")
		return
	}

	// The path is authoritative for the day; the stored ID is kept
	// stable across updates of the same day.
	entry.Date = date
	if entry.ID == uuid.Nil {
		entry.ID = s.service.EntryForDay(date).ID
	}

	if err := s.service.UpsertEntry(r.Context(), entry); err != nil {
		if isValidationError(err) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, "failed to save entry")
		return
	}

	writeJSON(w, r, http.StatusOK, s.service.EntryForDay(date))
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.service.Settings())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings core.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid settings payload")
		return
	}

	if err := s.service.ReplaceSettings(r.Context(), settings); err != nil {
		if isValidationError(err) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, "failed to save settings")
		return
	}

	writeJSON(w, r, http.StatusOK, s.service.Settings())
}

type summaryResponse struct {
	core.MonthSummary
	Balance  float64             `json:"balance"`
	Absences []core.AbsenceCount `json:"absences"`
}

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonthPath(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid year or month")
		return
	}

	summary := s.service.MonthlySummary(r.Context(), year, month)
	writeJSON(w, r, http.StatusOK, summaryResponse{
		MonthSummary: summary,
		Balance:      summary.Balance(),
		Absences:     s.service.AbsenceBreakdown(year, month),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotImplemented, "csv export is not implemented yet")
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotImplemented, "pdf export is not implemented yet")
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.service == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAbsenceType) ||
		errors.Is(err, core.ErrNegativeBreak) ||
		errors.Is(err, core.ErrInvalidContractHours) ||
		errors.Is(err, core.ErrInvalidWorkingDay)
}
