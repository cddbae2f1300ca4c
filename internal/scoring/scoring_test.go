package scoring

import "testing"

func TestOverallScore(t *testing.T) {
	tests := []struct {
		scores [5]int
		want   float64
	}{
		{[5]int{4, 3, 4, 3, 4}, 3.6},
		{[5]int{1, 1, 1, 1, 1}, 1.0},
		{[5]int{5, 5, 5, 5, 5}, 5.0},
		{[5]int{1, 2, 3, 4, 5}, 3.0},
		{[5]int{2, 2, 2, 2, 3}, 2.2},
	}

	for _, tt := range tests {
		got := OverallScore(tt.scores[0], tt.scores[1], tt.scores[2], tt.scores[3], tt.scores[4])
		if got != tt.want {
			t.Errorf("OverallScore(%v) = %v, want %v", tt.scores, got, tt.want)
		}
	}
}

func TestOverallScore_InRangeForAllValidInputs(t *testing.T) {
	for c := MinScore; c <= MaxScore; c++ {
		for e := MinScore; e <= MaxScore; e++ {
			got := OverallScore(c, e, 3, 3, 3)
			want := float64(c+e+9) / 5.0
			if got != want {
				t.Fatalf("OverallScore(%d,%d,3,3,3) = %v, want %v", c, e, got, want)
			}
			if got < MinScore || got > MaxScore {
				t.Fatalf("OverallScore(%d,%d,3,3,3) = %v outside [1,5]", c, e, got)
			}
		}
	}
}

func TestPointsEarned(t *testing.T) {
	tests := []struct {
		overall float64
		want    float64
	}{
		{3.0, 10.0},
		{3.6, 12.0},
		{1.0, 10.0 / 3.0},
		{5.0, 50.0 / 3.0},
	}

	for _, tt := range tests {
		got := PointsEarned(tt.overall)
		if got != tt.want {
			t.Errorf("PointsEarned(%v) = %v, want %v", tt.overall, got, tt.want)
		}
	}
}

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		completed int
		want      float64
	}{
		{0, 0.0},
		{1, 10.0},
		{3, 30.0},
		{9, 90.0},
		{10, 100.0},
		{11, 100.0},
		{100, 100.0},
	}

	for _, tt := range tests {
		got := ProgressPercentage(tt.completed)
		if got != tt.want {
			t.Errorf("ProgressPercentage(%d) = %v, want %v", tt.completed, got, tt.want)
		}
	}
}

func TestProgressPercentage_Monotonic(t *testing.T) {
	prev := ProgressPercentage(0)
	for n := 1; n <= 25; n++ {
		cur := ProgressPercentage(n)
		if cur < prev {
			t.Fatalf("ProgressPercentage(%d) = %v < ProgressPercentage(%d) = %v", n, cur, n-1, prev)
		}
		prev = cur
	}
}

func TestDimensionScores_Validate(t *testing.T) {
	valid := DimensionScores{Clarity: 4, Empathy: 3, Assertiveness: 4, Listening: 3, Confidence: 4}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if got := valid.Overall(); got != 3.6 {
		t.Errorf("Overall() = %v, want 3.6", got)
	}

	invalid := []DimensionScores{
		{Clarity: 0, Empathy: 3, Assertiveness: 3, Listening: 3, Confidence: 3},
		{Clarity: 3, Empathy: 6, Assertiveness: 3, Listening: 3, Confidence: 3},
		{Clarity: 3, Empathy: 3, Assertiveness: -1, Listening: 3, Confidence: 3},
		{Clarity: 3, Empathy: 3, Assertiveness: 3, Listening: 3, Confidence: 100},
	}
	for _, s := range invalid {
		if err := s.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", s)
		}
	}
}
