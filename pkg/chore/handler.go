package chore

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/choretracker/choretracker/internal/rest"
	"github.com/choretracker/choretracker/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ChoreDTO struct {
	Id               int    `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	FrequencyPerWeek int    `json:"frequencyPerWeek"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateChore(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new chore template")
	w.Header().Set("Content-Type", "application/json")

	var choreDTO struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		// Pointer to tell an omitted frequency (defaults to 1) apart from an explicit 0.
		FrequencyPerWeek *int `json:"frequencyPerWeek"`
	}
	if err := json.NewDecoder(r.Body).Decode(&choreDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	if choreDTO.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Name must be provided"})
		return
	}

	frequency := 1
	if choreDTO.FrequencyPerWeek != nil {
		frequency = *choreDTO.FrequencyPerWeek
	}

	created, err := h.service.Create(r.Context(), ChoreTemplate{
		Name:             choreDTO.Name,
		Description:      choreDTO.Description,
		FrequencyPerWeek: frequency,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidFrequency) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid frequency",
				Details: err.Error(),
			})
			return
		}
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ChoreToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetChores(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	chores, err := h.service.GetAll(r.Context())
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	choresDTO := make([]ChoreDTO, 0, len(chores))
	for _, c := range chores {
		choresDTO = append(choresDTO, ChoreToDTO(c))
	}
	if err := json.NewEncoder(w).Encode(choresDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetChore(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	choreId, ok := h.pathChoreId(w, r)
	if !ok {
		return
	}

	found, err := h.service.Get(r.Context(), choreId)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(ChoreToDTO(found)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteChore(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	choreId, ok := h.pathChoreId(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), choreId); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathChoreId(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["choreId"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid choreId format",
			Details: "Parameter choreId must be a number",
		})
		return 0, false
	}
	return int(id), true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrChoreNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, user.ErrNoUser) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func ChoreToDTO(chore ChoreTemplate) ChoreDTO {
	return ChoreDTO{
		Id:               chore.Id,
		Name:             chore.Name,
		Description:      chore.Description,
		FrequencyPerWeek: chore.FrequencyPerWeek,
	}
}
