package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/choretracker/choretracker/internal/rest"
	"github.com/choretracker/choretracker/pkg/child"
	"github.com/choretracker/choretracker/pkg/user"
	"github.com/gorilla/mux"
)

type WeeklySummaryDTO struct {
	ChildId              int     `json:"childId"`
	ChildName            string  `json:"childName"`
	WeekStartDate        string  `json:"weekStartDate"`
	TotalAssignments     int     `json:"totalAssignments"`
	CompletedAssignments int     `json:"completedAssignments"`
	WeeklyAllowance      float64 `json:"weeklyAllowance"`
	EarnedAllowance      float64 `json:"earnedAllowance"`
}

type Handler struct {
	service  Service
	renderer HistoryRenderer
}

func NewHandler(service Service, renderer HistoryRenderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

func (h *Handler) GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	childId, ok := h.pathId(w, r, "childId")
	if !ok {
		return
	}

	// Can be any day of the requested week; defaults to the current week.
	weekDate := time.Now()
	if dateString := r.URL.Query().Get("date"); dateString != "" {
		var err error
		weekDate, err = time.Parse(time.DateOnly, dateString)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Incorrect date format",
				Details: "Date must be in YYYY-MM-DD format",
			})
			return
		}
	}

	summary, err := h.service.GetWeeklySummary(r.Context(), childId, weekDate)
	if err != nil {
		h.writeError(w, err)
		return
	}

	dto := WeeklySummaryDTO{
		ChildId:              summary.ChildId,
		ChildName:            summary.ChildName,
		WeekStartDate:        summary.WeekStartDate.Format(time.DateOnly),
		TotalAssignments:     summary.TotalAssignments,
		CompletedAssignments: summary.CompletedAssignments,
		WeeklyAllowance:      summary.WeeklyAllowance,
		EarnedAllowance:      summary.EarnedAllowance,
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetHistoryCsv(w http.ResponseWriter, r *http.Request) {
	childId, ok := h.pathId(w, r, "childId")
	if !ok {
		return
	}

	startDate, ok := h.queryDate(w, r, "startDate")
	if !ok {
		return
	}
	endDate, ok := h.queryDate(w, r, "endDate")
	if !ok {
		return
	}

	history, err := h.service.GetHistory(r.Context(), childId, startDate, endDate)
	if err != nil {
		h.writeError(w, err)
		return
	}

	rendered, err := h.renderer.RenderHistory(history)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=chore-history.csv")
	if _, err := w.Write([]byte(rendered)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) queryDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Incorrect " + name + " format",
			Details: "Date must be in YYYY-MM-DD format",
		})
		return nil, false
	}
	return &parsed, true
}

func (h *Handler) pathId(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars[name], 10, 64)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid " + name + " format",
			Details: "Parameter " + name + " must be a number",
		})
		return 0, false
	}
	return int(id), true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, child.ErrChildNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, user.ErrNoUser) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
