package moneybook

import (
	"testing"
	"time"
)

func TestRangeContains(t *testing.T) {
	r := NewRange(NewDate(2025, time.June, 15), Monthly)

	tests := []struct {
		date Date
		want bool
	}{
		{NewDate(2025, time.June, 1), true},
		{NewDate(2025, time.June, 15), true},
		{NewDate(2025, time.June, 30), true},
		{NewDate(2025, time.May, 31), false},
		{NewDate(2025, time.July, 1), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.date); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}
