package budget

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/subtrack/subtrack/internal/rest"
	"github.com/subtrack/subtrack/internal/utils"
)

type StatusDTO struct {
	Config struct {
		MonthlyLimit float64 `json:"monthly_limit"`
	} `json:"config"`
	Status struct {
		CurrentSpend float64 `json:"current_spend"`
		Remaining    float64 `json:"remaining"`
		UsagePercent float64 `json:"usage_percent"`
		HealthLabel  string  `json:"health_label"`
	} `json:"status"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		rest.WriteInternalError(w, err)
		return
	}

	if !status.Set {
		rest.WriteJSON(w, http.StatusOK, struct {
			Message      string  `json:"message"`
			MonthlyLimit float64 `json:"monthly_limit"`
		}{
			Message:      "Budget not set",
			MonthlyLimit: 0,
		})
		return
	}

	var dto StatusDTO
	dto.Config.MonthlyLimit = status.MonthlyLimit
	dto.Status.CurrentSpend = utils.RoundTo(status.CurrentSpend, 2)
	dto.Status.Remaining = utils.RoundTo(status.Remaining, 2)
	dto.Status.UsagePercent = utils.RoundTo(status.UsagePercent, 1)
	dto.Status.HealthLabel = string(status.Health)
	rest.WriteJSON(w, http.StatusOK, dto)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating budget limit")

	var req struct {
		Limit *float64 `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Bad Request", "Limit must be a number")
		return
	}
	if req.Limit == nil {
		rest.WriteError(w, http.StatusBadRequest, "Bad Request", "Missing required field: limit")
		return
	}

	updated, err := h.service.Set(r.Context(), *req.Limit)
	if err != nil {
		if errors.Is(err, ErrInvalidLimit) {
			rest.WriteError(w, http.StatusBadRequest, "Bad Request", "Budget must be positive")
			return
		}
		rest.WriteInternalError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, struct {
		Message      string  `json:"message"`
		MonthlyLimit float64 `json:"monthly_limit"`
	}{
		Message:      "Budget updated",
		MonthlyLimit: updated.MonthlyLimit,
	})
}
