package points

import (
	"testing"
)

func TestComputePoints(t *testing.T) {
	tests := []struct {
		name       string
		todaySteps int
		baseline   int
		earned     int
		lost       int
	}{
		{"exactly one bracket above", 5500, 5000, 100, 0},
		{"exactly one bracket below", 4500, 5000, 0, 50},
		{"dead zone upper edge", 5499, 5000, 0, 0},
		{"dead zone lower edge", 4501, 5000, 0, 0},
		{"equal to baseline", 5000, 5000, 0, 0},
		{"three brackets above", 6500, 5000, 300, 0},
		{"partial bracket floors", 6400, 5000, 200, 0},
		{"earn capped at 1000", 100000, 0, 1000, 0},
		{"earn at exactly the cap", 5000, 0, 1000, 0},
		{"loss capped at 500", 0, 100000, 0, 500},
		{"loss at exactly the cap", 0, 5000, 0, 500},
		{"four brackets below", 3000, 5000, 0, 200},
		{"zero steps zero baseline", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			earned, lost := ComputePoints(tt.todaySteps, tt.baseline)
			if earned != tt.earned || lost != tt.lost {
				t.Errorf("ComputePoints(%d, %d) = (%d, %d), want (%d, %d)",
					tt.todaySteps, tt.baseline, earned, lost, tt.earned, tt.lost)
			}
		})
	}
}

// Le gain vaut exactement le double de la perte à magnitude de pas égale.
func TestComputePointsAsymmetry(t *testing.T) {
	for _, baseline := range []int{0, 500, 1500, 7000, 50000} {
		earned, lost := ComputePoints(baseline+500, baseline)
		if earned != 100 || lost != 0 {
			t.Fatalf("baseline %d: +500 steps = (%d, %d), want (100, 0)", baseline, earned, lost)
		}
		if baseline >= 500 {
			earned, lost = ComputePoints(baseline-500, baseline)
			if earned != 0 || lost != 50 {
				t.Fatalf("baseline %d: -500 steps = (%d, %d), want (0, 50)", baseline, earned, lost)
			}
		}
	}
}

func TestComputePointsDeadZone(t *testing.T) {
	baseline := 5000
	for d := -499; d <= 499; d++ {
		earned, lost := ComputePoints(baseline+d, baseline)
		if earned != 0 || lost != 0 {
			t.Fatalf("diff %d inside dead zone produced (%d, %d)", d, earned, lost)
		}
	}
}

// Trois utilisateurs, 10000 pas aujourd'hui, baselines issues d'historiques
// constants de 0, 7000 et 3500 pas/jour.
func TestComputePointsScenario(t *testing.T) {
	tests := []struct {
		baseline int
		earned   int
	}{
		{0, 1000},    // diff 10000 -> 2000 points, plafonné à 1000
		{7000, 600},  // diff 3000 -> 6 tranches
		{3500, 1000}, // diff 6500 -> 1300 points, plafonné à 1000
	}
	for _, tt := range tests {
		earned, lost := ComputePoints(10000, tt.baseline)
		if earned != tt.earned || lost != 0 {
			t.Errorf("baseline %d: got (%d, %d), want (%d, 0)", tt.baseline, earned, lost, tt.earned)
		}
	}
}

func TestClampSteps(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-1, 0},
		{-100000, 0},
		{0, 0},
		{42, 42},
		{100000, 100000},
		{100001, 100000},
		{2500000, 100000},
	}
	for _, tt := range tests {
		if got := ClampSteps(tt.in); got != tt.want {
			t.Errorf("ClampSteps(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
