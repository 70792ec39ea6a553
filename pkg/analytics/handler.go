package analytics

import (
	"net/http"

	"github.com/subtrack/subtrack/internal/rest"
	"github.com/subtrack/subtrack/internal/utils"
)

type ReportDTO struct {
	FinancialSummary FinancialSummaryDTO `json:"financial_summary"`
	CategoryInsights CategoryInsightsDTO `json:"category_insights"`
	Subscriptions    []BreakdownEntryDTO `json:"subscriptions"`
}

type FinancialSummaryDTO struct {
	TotalMonthlyCost        float64 `json:"total_monthly_cost"`
	TotalYearlyProjection   float64 `json:"total_yearly_projection"`
	ActiveSubscriptionCount int     `json:"active_subscription_count"`
}

type CategoryInsightsDTO struct {
	TopSpendingCategory     *string            `json:"top_spending_category"`
	TopCategoryMonthlyTotal float64            `json:"top_category_monthly_total"`
	AllCategoryTotals       map[string]float64 `json:"all_category_totals"`
}

type BreakdownEntryDTO struct {
	Name        string  `json:"name"`
	MonthlyCost float64 `json:"monthly_cost"`
	Category    string  `json:"category"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Dashboard(r.Context())
	if err != nil {
		rest.WriteInternalError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(report))
}

func toDTO(report Report) ReportDTO {
	var topCategory *string
	if report.Insights.TopCategory != "" {
		topCategory = &report.Insights.TopCategory
	}

	categoryTotals := make(map[string]float64, len(report.Insights.CategoryTotals))
	for _, ct := range report.Insights.CategoryTotals {
		categoryTotals[ct.Category] = utils.RoundTo(ct.Total, 2)
	}

	breakdown := make([]BreakdownEntryDTO, 0, len(report.Breakdown))
	for _, entry := range report.Breakdown {
		breakdown = append(breakdown, BreakdownEntryDTO{
			Name:        entry.Name,
			MonthlyCost: utils.RoundTo(entry.MonthlyCost, 2),
			Category:    entry.Category,
		})
	}

	return ReportDTO{
		FinancialSummary: FinancialSummaryDTO{
			TotalMonthlyCost:        utils.RoundTo(report.Summary.TotalMonthlyCost, 2),
			TotalYearlyProjection:   utils.RoundTo(report.Summary.YearlyProjection, 2),
			ActiveSubscriptionCount: report.Summary.ActiveCount,
		},
		CategoryInsights: CategoryInsightsDTO{
			TopSpendingCategory:     topCategory,
			TopCategoryMonthlyTotal: utils.RoundTo(report.Insights.TopCategoryTotal, 2),
			AllCategoryTotals:       categoryTotals,
		},
		Subscriptions: breakdown,
	}
}
