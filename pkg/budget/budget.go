package budget

// Budget is the single monthly spending limit. At most one row exists; it is
// created lazily on the first update and replaced in place afterwards.
type Budget struct {
	ID           int
	MonthlyLimit float64
}

// Health is the qualitative classification of budget usage.
type Health string

const (
	HealthGood       Health = "Good"
	HealthWarning    Health = "Warning"
	HealthOverBudget Health = "Over Budget"
)

// HealthFor classifies a usage percentage. Boundary values fall into the
// lower-severity bucket: exactly 85 is Good, exactly 100 is Warning.
func HealthFor(usagePercent float64) Health {
	switch {
	case usagePercent > 100:
		return HealthOverBudget
	case usagePercent > 85:
		return HealthWarning
	default:
		return HealthGood
	}
}

// Status is the evaluated budget health. Set is false when no budget has
// been configured yet, in which case all other fields are zero.
type Status struct {
	Set          bool
	MonthlyLimit float64
	CurrentSpend float64
	Remaining    float64
	UsagePercent float64
	Health       Health
}
