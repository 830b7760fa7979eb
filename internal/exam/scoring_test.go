package exam

import "testing"

func TestFixedPointsScore(t *testing.T) {
	tests := []struct {
		name    string
		per     int
		correct int
		want    int
	}{
		{"none correct", 5, 0, 0},
		{"all correct", 5, 20, 100},
		{"more than twenty correct is unbounded", 5, 30, 150},
		{"custom points", 10, 3, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FixedPoints{PerCorrect: tt.per}
			if got := p.Score(tt.correct, 100); got != tt.want {
				t.Errorf("Score(%d) = %d, want %d", tt.correct, got, tt.want)
			}
		})
	}
}

func TestPercentageScore(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    int
	}{
		{"zero total", 0, 0, 0},
		{"all correct", 10, 10, 100},
		{"two thirds rounds", 2, 3, 67},
		{"one third rounds", 1, 3, 33},
		{"half", 1, 2, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Percentage{}).Score(tt.correct, tt.total); got != tt.want {
				t.Errorf("Score(%d/%d) = %d, want %d", tt.correct, tt.total, got, tt.want)
			}
		})
	}
}

func TestPolicyFromName(t *testing.T) {
	p, err := PolicyFromName(PolicyFixedPoints, 5)
	if err != nil {
		t.Fatalf("PolicyFromName: %v", err)
	}
	if p.Name() != PolicyFixedPoints {
		t.Fatalf("name = %s", p.Name())
	}

	p, err = PolicyFromName(PolicyPercentage, 0)
	if err != nil {
		t.Fatalf("PolicyFromName: %v", err)
	}
	if p.Name() != PolicyPercentage {
		t.Fatalf("name = %s", p.Name())
	}

	if _, err := PolicyFromName("golf", 5); err == nil {
		t.Fatal("unknown policy name must error")
	}
}
