package child

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

type ChildDTO struct {
	Id              int     `json:"id"`
	Name            string  `json:"name"`
	WeeklyAllowance float64 `json:"weeklyAllowance"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateChild(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new child")
	w.Header().Set("Content-Type", "application/json")

	var childDTO ChildDTO
	if err := json.NewDecoder(r.Body).Decode(&childDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	if childDTO.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Name must be provided"})
		return
	}

	created, err := h.service.Create(r.Context(), DTOToChild(childDTO))
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ChildToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetChildren(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	children, err := h.service.GetAll(r.Context())
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	childrenDTO := make([]ChildDTO, 0, len(children))
	for _, c := range children {
		childrenDTO = append(childrenDTO, ChildToDTO(c))
	}
	if err := json.NewEncoder(w).Encode(childrenDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetChild(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	childId, ok := pathId(w, r, "childId")
	if !ok {
		return
	}

	found, err := h.service.Get(r.Context(), childId)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(ChildToDTO(found)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	childId, ok := pathId(w, r, "childId")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), childId); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrChildNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, user.ErrNoUser) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func pathId(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
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

func ChildToDTO(child Child) ChildDTO {
	return ChildDTO{
		Id:              child.Id,
		Name:            child.Name,
		WeeklyAllowance: child.WeeklyAllowance,
	}
}

func DTOToChild(dto ChildDTO) Child {
	return Child{
		Id:              dto.Id,
		Name:            dto.Name,
		WeeklyAllowance: dto.WeeklyAllowance,
	}
}
