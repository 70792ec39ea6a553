package subscription

import (
	"time"
)

// Frequency is a subscription's billing cadence. Only the enumerated values
// are valid; free-text input goes through ParseFrequency.
type Frequency string

const (
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
	FrequencyYearly  Frequency = "Yearly"
)

func AllFrequencies() []Frequency {
	return []Frequency{FrequencyWeekly, FrequencyMonthly, FrequencyYearly}
}

func ParseFrequency(s string) (Frequency, bool) {
	for _, f := range AllFrequencies() {
		if s == string(f) {
			return f, true
		}
	}
	return "", false
}

// Status models whether a subscription counts toward spend. It is
// independent of deletion: a paused or cancelled subscription still exists.
type Status string

const (
	StatusActive    Status = "Active"
	StatusPaused    Status = "Paused"
	StatusCancelled Status = "Cancelled"
)

func AllStatuses() []Status {
	return []Status{StatusActive, StatusPaused, StatusCancelled}
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range AllStatuses() {
		if s == string(st) {
			return st, true
		}
	}
	return "", false
}

type Subscription struct {
	ID        int
	Name      string
	Price     float64
	Frequency Frequency
	StartDate time.Time
	Status    Status
	// CategoryID references an existing category. CategoryName is filled
	// from the join on reads.
	CategoryID   int
	CategoryName string
}

// MonthlyCost normalizes the price to its monthly-equivalent rate. It is
// recomputed on every read and never persisted, so price or frequency
// changes can not leave a stale value behind.
func (s Subscription) MonthlyCost() float64 {
	switch s.Frequency {
	case FrequencyWeekly:
		return s.Price * 4
	case FrequencyYearly:
		return s.Price / 12
	default:
		return s.Price
	}
}

// Input is a partial subscription payload. Nil fields were absent from the
// request, which matters for update semantics.
type Input struct {
	Name      *string
	Price     *float64
	Frequency *string
	Status    *string
	StartDate *string
	Category  *string
}
