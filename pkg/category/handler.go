package category

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/subtrack/subtrack/internal/rest"
)

type CategoryDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteInternalError(w, err)
		return
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, toDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new category")

	var req struct {
		Name *string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if req.Name == nil || *req.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, "Bad Request", "Missing required field: name")
		return
	}

	created, err := h.service.Create(r.Context(), *req.Name)
	if err != nil {
		if errors.Is(err, ErrDuplicateName) {
			rest.WriteError(w, http.StatusConflict, "Duplicate Entry", err.Error())
			return
		}
		rest.WriteInternalError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, struct {
		Message  string      `json:"message"`
		Category CategoryDTO `json:"category"`
	}{
		Message:  "Category created",
		Category: toDTO(created),
	})
}

func toDTO(c Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name}
}
