package monitor

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func filled(n, capacity int) *History[int] {
	h := NewHistory[int](capacity)
	for i := range n {
		h.Push(i)
	}
	return h
}

func TestWindow(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		size     int
		lookback int
		points   int
		want     []int
	}{
		{"empty history", 0, 60, 10, nil},
		{"single sample", 1, 60, 10, []int{0}},
		{"fewer samples than one stride returns oldest", 5, 60, 10, []int{0}},
		{"stride one keeps everything in lookback", 10, 5, 10, []int{5, 6, 7, 8, 9}},
		{"exact multiple", 12, 12, 4, []int{2, 5, 8, 11}},
		{"remainder dropped from the front", 10, 10, 4, []int{3, 6, 9}},
		{"lookback larger than history", 7, 100, 50, []int{2, 4, 6}},
		{"non-positive points treated as one", 9, 3, 0, []int{8}},
		{"non-positive lookback treated as one", 9, 0, 5, []int{8}},
		{"maximal lookback does not overflow the stride", 1000, math.MaxInt, 10, []int{0}},
		{"maximal lookback and points", 6, math.MaxInt, math.MaxInt, []int{0, 1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Window(filled(tt.size, 1000), tt.lookback, tt.points)
			if len(got) != len(tt.want) {
				t.Fatalf("Window() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("Window() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestWindow_DayOfSamples(t *testing.T) {
	t.Parallel()
	h := filled(DefaultRetention, DefaultRetention)

	got := Window(h, 3600, 60)
	if len(got) != 60 {
		t.Fatalf("len = %d, want 60", len(got))
	}
	if got[len(got)-1] != DefaultRetention-1 {
		t.Errorf("last = %d, want newest %d", got[len(got)-1], DefaultRetention-1)
	}
	for i := 1; i < len(got); i++ {
		if got[i]-got[i-1] != 60 {
			t.Fatalf("gap at %d = %d, want stride 60", i, got[i]-got[i-1])
		}
	}
	if got[0] < DefaultRetention-3600 {
		t.Errorf("first = %d is older than the lookback", got[0])
	}
}

func TestWindow_AfterEviction(t *testing.T) {
	t.Parallel()
	h := filled(25, 10) // holds 15..24
	got := Window(h, 10, 5)
	want := []int{16, 18, 20, 22, 24}
	if len(got) != len(want) {
		t.Fatalf("Window() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Window() = %v, want %v", got, want)
		}
	}
}

// TestWindow_Properties checks the budget, ordering and recency guarantees for
// arbitrary history sizes and queries.
func TestWindow_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("never exceeds the point budget", prop.ForAll(
		func(size, points, extra int) bool {
			lookback := points + extra
			return len(Window(filled(size, 5000), lookback, points)) <= points
		},
		gen.IntRange(0, 3000),
		gen.IntRange(1, 300),
		gen.IntRange(0, 3000),
	))

	properties.Property("budget holds for lookbacks near the int limit", prop.ForAll(
		func(size, points, below int) bool {
			return len(Window(filled(size, 5000), math.MaxInt-below, points)) <= points
		},
		gen.IntRange(0, 3000),
		gen.IntRange(1, 300),
		gen.IntRange(0, 300),
	))

	properties.Property("chronological subsequence ending at the newest sample", prop.ForAll(
		func(size, lookback, points int) bool {
			got := Window(filled(size, 5000), lookback, points)
			stride := max((lookback+points-1)/points, 1)
			if size < stride {
				return len(got) == 1 && got[0] == 0
			}
			if len(got) == 0 || got[len(got)-1] != size-1 {
				return false
			}
			for i := 1; i < len(got); i++ {
				if got[i]-got[i-1] != stride {
					return false
				}
			}
			return got[0] >= size-lookback
		},
		gen.IntRange(1, 3000),
		gen.IntRange(1, 4000),
		gen.IntRange(1, 300),
	))

	properties.TestingRun(t)
}
