package subscription

import (
	"testing"
)

func TestSubscription_MonthlyCost(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		frequency Frequency
		want      float64
	}{
		{
			name:      "weekly is price times four",
			price:     5,
			frequency: FrequencyWeekly,
			want:      20,
		},
		{
			name:      "monthly is price unchanged",
			price:     9.99,
			frequency: FrequencyMonthly,
			want:      9.99,
		},
		{
			name:      "yearly is price divided by twelve",
			price:     120,
			frequency: FrequencyYearly,
			want:      10,
		},
		{
			name:      "zero price normalizes to zero",
			price:     0,
			frequency: FrequencyWeekly,
			want:      0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Subscription{Price: tt.price, Frequency: tt.frequency}
			if got := s.MonthlyCost(); got != tt.want {
				t.Errorf("MonthlyCost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubscription_MonthlyCostIsLinearInPrice(t *testing.T) {
	for _, frequency := range AllFrequencies() {
		for _, k := range []float64{2, 4, 10} {
			base := Subscription{Price: 7.5, Frequency: frequency}
			scaled := Subscription{Price: 7.5 * k, Frequency: frequency}
			if got, want := scaled.MonthlyCost(), k*base.MonthlyCost(); got != want {
				t.Errorf("MonthlyCost(%v * price, %s) = %v, want %v", k, frequency, got, want)
			}
		}
	}
}

func TestParseFrequency(t *testing.T) {
	for _, frequency := range AllFrequencies() {
		parsed, ok := ParseFrequency(string(frequency))
		if !ok || parsed != frequency {
			t.Errorf("ParseFrequency(%q) = %v, %v", frequency, parsed, ok)
		}
	}
	// Matching is on the exact display string.
	if _, ok := ParseFrequency("weekly"); ok {
		t.Error("ParseFrequency should reject lowercased input")
	}
	if _, ok := ParseFrequency("Daily"); ok {
		t.Error("ParseFrequency should reject unknown values")
	}
}

func TestParseStatus(t *testing.T) {
	for _, status := range AllStatuses() {
		parsed, ok := ParseStatus(string(status))
		if !ok || parsed != status {
			t.Errorf("ParseStatus(%q) = %v, %v", status, parsed, ok)
		}
	}
	if _, ok := ParseStatus("Expired"); ok {
		t.Error("ParseStatus should reject unknown values")
	}
}
