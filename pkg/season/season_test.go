package season

import "testing"

func TestMonths(t *testing.T) {
	tests := []struct {
		label string
		start int
		end   int
	}{
		{"春", 3, 5},
		{"夏", 6, 8},
		{"秋", 9, 11},
		{"冬", 12, 2},
		{"梅雨", 6, 6},
		{"通年", 1, 12},
	}
	for _, tt := range tests {
		r, ok := Months(tt.label)
		if !ok {
			t.Errorf("Months(%q): not found", tt.label)
			continue
		}
		if r.Start != tt.start || r.End != tt.end {
			t.Errorf("Months(%q) = %d-%d, want %d-%d", tt.label, r.Start, r.End, tt.start, tt.end)
		}
	}
	if _, ok := Months("unknown"); ok {
		t.Error("Months(unknown): expected not found")
	}
}

func TestLabel(t *testing.T) {
	want := map[int]string{
		1: "冬", 2: "冬", 3: "春", 4: "春", 5: "春",
		6: "夏", 7: "夏", 8: "夏", 9: "秋", 10: "秋", 11: "秋", 12: "冬",
	}
	for m, label := range want {
		if got := Label(m); got != label {
			t.Errorf("Label(%d) = %q, want %q", m, got, label)
		}
	}
}
