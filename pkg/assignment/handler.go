package assignment

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
	log "github.com/sirupsen/logrus"
)

type AssignmentDTO struct {
	Id               int    `json:"id"`
	ChildId          int    `json:"childId"`
	ChoreId          int    `json:"choreId"`
	ChoreName        string `json:"choreName,omitempty"`
	WeekStartDate    string `json:"weekStartDate"`
	OccurrenceNumber int    `json:"occurrenceNumber"`
	IsCompleted      bool   `json:"isCompleted"`
	CompletionDate   string `json:"completionDate,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GenerateAssignments(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating weekly assignments")
	w.Header().Set("Content-Type", "application/json")

	var generateDTO struct {
		ChildId   int    `json:"childId"`
		ChoreIds  []int  `json:"choreIds"`
		WeekStart string `json:"weekStart"`
	}
	if err := json.NewDecoder(r.Body).Decode(&generateDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	weekDate, err := time.Parse(time.DateOnly, generateDTO.WeekStart)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Incorrect weekStart format",
			Details: "Date must be in YYYY-MM-DD format",
		})
		return
	}

	created, err := h.service.Generate(r.Context(), generateDTO.ChildId, generateDTO.ChoreIds, weekDate)
	if err != nil {
		h.writeError(w, err)
		return
	}

	assignmentsDTO := make([]AssignmentDTO, 0, len(created))
	for _, a := range created {
		assignmentsDTO = append(assignmentsDTO, AssignmentToDTO(a))
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(assignmentsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetWeeklyAssignments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	childId, ok := h.pathId(w, r, "childId")
	if !ok {
		return
	}

	// Can be any day of the given week; defaults to the current week.
	weekDate := time.Now()
	if weekStartString := r.URL.Query().Get("weekStart"); weekStartString != "" {
		var err error
		weekDate, err = time.Parse(time.DateOnly, weekStartString)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Incorrect weekStart format",
				Details: "Date must be in YYYY-MM-DD format",
			})
			return
		}
	}

	assignments, err := h.service.GetForWeek(r.Context(), childId, weekDate)
	if err != nil {
		h.writeError(w, err)
		return
	}

	assignmentsDTO := make([]AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		assignmentsDTO = append(assignmentsDTO, AssignmentToDTO(a))
	}
	if err := json.NewEncoder(w).Encode(assignmentsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CompleteAssignment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	assignmentId, ok := h.pathId(w, r, "assignmentId")
	if !ok {
		return
	}

	completed, err := h.service.Complete(r.Context(), assignmentId)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(AssignmentToDTO(completed)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAssignmentHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
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

	historyDTO := make([]AssignmentDTO, 0, len(history))
	for _, a := range history {
		historyDTO = append(historyDTO, AssignmentToDTO(a))
	}
	if err := json.NewEncoder(w).Encode(historyDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	assignmentId, ok := h.pathId(w, r, "assignmentId")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), assignmentId); err != nil {
		h.writeError(w, err)
		return
	}
	response := struct {
		Status string `json:"status"`
	}{Status: "success"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) pathId(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars[name], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid " + name + " format",
			Details: "Parameter " + name + " must be a number",
		})
		return 0, false
	}
	return int(id), true
}

func (h *Handler) queryDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Incorrect " + name + " format",
			Details: "Date must be in YYYY-MM-DD format",
		})
		return nil, false
	}
	return &parsed, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, child.ErrChildNotFound) || errors.Is(err, ErrAssignmentNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, user.ErrNoUser) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func AssignmentToDTO(a Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		Id:               a.Id,
		ChildId:          a.ChildId,
		ChoreId:          a.ChoreId,
		ChoreName:        a.ChoreName,
		WeekStartDate:    a.WeekStartDate.Format(time.DateOnly),
		OccurrenceNumber: a.OccurrenceNumber,
		IsCompleted:      a.IsCompleted,
	}
	if a.CompletionDate != nil {
		dto.CompletionDate = a.CompletionDate.Format(time.DateOnly)
	}
	return dto
}
