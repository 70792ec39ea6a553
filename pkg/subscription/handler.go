package subscription

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/subtrack/subtrack/internal/rest"
	"github.com/subtrack/subtrack/internal/utils"
)

type SubscriptionDTO struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Frequency string  `json:"frequency"`
	Category  string  `json:"category"`
	StartDate string  `json:"start_date"`
	Status    string  `json:"status"`
	// MonthlyCost is derived from price and frequency, rounded for display.
	MonthlyCost float64 `json:"monthly_cost"`
}

type subscriptionRequest struct {
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	Frequency *string  `json:"frequency"`
	Status    *string  `json:"status"`
	StartDate *string  `json:"start_date"`
	Category  *string  `json:"category"`
}

func (r subscriptionRequest) toInput() Input {
	return Input{
		Name:      r.Name,
		Price:     r.Price,
		Frequency: r.Frequency,
		Status:    r.Status,
		StartDate: r.StartDate,
		Category:  r.Category,
	}
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new subscription")

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	created, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		h.writeError(w, err, 0)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, struct {
		Message      string          `json:"message"`
		Subscription SubscriptionDTO `json:"subscription"`
		Note         string          `json:"note"`
	}{
		Message:      "Created",
		Subscription: toDTO(created),
		Note:         fmt.Sprintf("Category %q was linked successfully.", created.CategoryName),
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categoryFilter := r.URL.Query().Get("category")
	statusFilter := r.URL.Query().Get("status")

	subs, err := h.service.List(r.Context(), categoryFilter, statusFilter)
	if err != nil {
		rest.WriteInternalError(w, err)
		return
	}

	dtos := make([]SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		dtos = append(dtos, toDTO(sub))
	}
	// Zero matches is a successful empty list, not an error.
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	sub, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, id)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(sub))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		h.writeError(w, err, id)
		return
	}

	rest.WriteJSON(w, http.StatusOK, struct {
		Message      string          `json:"message"`
		Subscription SubscriptionDTO `json:"subscription"`
	}{
		Message:      "Updated",
		Subscription: toDTO(updated),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, err, id)
		return
	}

	// The removed record is returned so the caller can display what was
	// deleted.
	rest.WriteJSON(w, http.StatusOK, struct {
		Message      string          `json:"message"`
		Subscription SubscriptionDTO `json:"subscription"`
	}{
		Message:      "Deleted successfully",
		Subscription: toDTO(deleted),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error, id int) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		rest.WriteError(w, http.StatusBadRequest, "Bad Request", vErr.Reason)
	case errors.Is(err, ErrDuplicateName):
		rest.WriteError(w, http.StatusConflict, "Duplicate Entry", err.Error())
	case errors.Is(err, ErrNotFound):
		rest.WriteError(w, http.StatusNotFound, "Not Found", fmt.Sprintf("Subscription with ID %d not found", id))
	default:
		rest.WriteInternalError(w, err)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idString := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Invalid subscription id %q", idString))
		return 0, false
	}
	return id, true
}

func toDTO(sub Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		ID:          sub.ID,
		Name:        sub.Name,
		Price:       sub.Price,
		Frequency:   string(sub.Frequency),
		Category:    sub.CategoryName,
		StartDate:   sub.StartDate.Format("2006-01-02"),
		Status:      string(sub.Status),
		MonthlyCost: utils.RoundTo(sub.MonthlyCost(), 2),
	}
}
