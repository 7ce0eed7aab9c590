package remote

import (
	"testing"

	"github.com/vovakirdan/vibe-snake/internal/highscore"
)

func TestMerge(t *testing.T) {
	a := highscore.Entry{Name: "A", Score: 150, Date: "2024-01-01T00:00:00.000Z"}
	b := highscore.Entry{Name: "B", Score: 200, Date: "2024-01-02T00:00:00.000Z"}
	aLater := highscore.Entry{Name: "A", Score: 150, Date: "2024-01-03T00:00:00.000Z"}

	tests := []struct {
		name     string
		local    highscore.Table
		remote   highscore.Table
		expected highscore.Table
	}{
		{"disjoint tables are ranked", highscore.Table{a}, highscore.Table{b}, highscore.Table{b, a}},
		{"identical entries collapse", highscore.Table{a}, highscore.Table{a}, highscore.Table{a}},
		{"different dates are distinct", highscore.Table{a}, highscore.Table{aLater}, highscore.Table{a, aLater}},
		{"empty remote keeps local", highscore.Table{a, b}, highscore.Table{}, highscore.Table{a, b}},
		{"nil remote keeps local", highscore.Table{a}, nil, highscore.Table{a}},
		{"empty local takes remote", nil, highscore.Table{a, b}, highscore.Table{b, a}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Merge(tc.local, tc.remote)
			if len(got) != len(tc.expected) {
				t.Fatalf("Merge() = %v, expected %v", got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("Merge()[%d] = %v, expected %v", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestMergeTruncatesToCapacity(t *testing.T) {
	var local, remote highscore.Table
	for i := range 8 {
		local = append(local, highscore.Entry{Name: "L", Score: i * 10, Date: "2024-01-01T00:00:00.000Z"})
		remote = append(remote, highscore.Entry{Name: "R", Score: i*10 + 5, Date: "2024-01-01T00:00:00.000Z"})
	}

	got := Merge(local, remote)
	if len(got) != highscore.Capacity {
		t.Fatalf("len = %d, expected %d", len(got), highscore.Capacity)
	}
	if got[0].Score != 75 || got[len(got)-1].Score != 30 {
		t.Errorf("merged range = %d..%d, expected 75..30", got[0].Score, got[len(got)-1].Score)
	}
}
