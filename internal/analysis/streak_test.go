package analysis

import "testing"

func TestStreak(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		want   int
	}{
		{"empty", []int64{}, 0},
		{"nil", nil, 0},
		{"zero first breaks streak", []int64{0, 5, 5}, 0},
		{"buying streak stops at sign change", []int64{3, 2, 1, -1}, 3},
		{"selling streak", []int64{-1, -2, 3}, -2},
		{"single positive", []int64{7}, 1},
		{"single negative", []int64{-7}, -1},
		{"single zero", []int64{0}, 0},
		{"full buying run", []int64{1, 1, 1, 1}, 4},
		{"full selling run", []int64{-4, -4, -4}, -3},
		{"zero mid-run stops", []int64{5, 0, 5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.values); got != tt.want {
				t.Errorf("Streak(%v) = %d, want %d", tt.values, got, tt.want)
			}
		})
	}
}
