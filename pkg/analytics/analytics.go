package analytics

// Report is the computed financial dashboard over all active subscriptions.
// Money values are kept unrounded here; rounding happens in the DTO layer.
type Report struct {
	Summary   Summary
	Insights  CategoryInsights
	Breakdown []SubscriptionCost
}

type Summary struct {
	TotalMonthlyCost float64
	YearlyProjection float64
	ActiveCount      int
}

type CategoryInsights struct {
	// TopCategory is empty when there are no active subscriptions.
	TopCategory      string
	TopCategoryTotal float64
	// CategoryTotals is ordered by first appearance so a spend tie between
	// categories resolves deterministically.
	CategoryTotals []CategoryTotal
}

type CategoryTotal struct {
	Category string
	Total    float64
}

type SubscriptionCost struct {
	Name        string
	MonthlyCost float64
	Category    string
}
