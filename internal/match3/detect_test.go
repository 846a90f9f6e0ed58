package match3

import (
	"testing"
)

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want []Pos
	}{
		{
			name: "no runs",
			rows: []string{"RBG", "GRB", "BGR"},
			want: nil,
		},
		{
			name: "row of three",
			rows: []string{"RRR", "GBY", "BGB"},
			want: []Pos{P(0, 0), P(0, 1), P(0, 2)},
		},
		{
			name: "column of three",
			rows: []string{"RBG", "RGB", "RBY"},
			want: []Pos{P(0, 0), P(1, 0), P(2, 0)},
		},
		{
			name: "run of four extends",
			rows: []string{"GGGGB", "BYRBY", "YRBYR", "RBYRB", "BYRBY"},
			want: []Pos{P(0, 0), P(0, 1), P(0, 2), P(0, 3)},
		},
		{
			name: "L shape unions",
			rows: []string{"RRR", "RBG", "RGB"},
			want: []Pos{P(0, 0), P(0, 1), P(0, 2), P(1, 0), P(2, 0)},
		},
		{
			name: "two runs in one row",
			rows: []string{
				"RRRBBB.",
				".......",
				".......",
				".......",
				".......",
				".......",
				".......",
			},
			want: []Pos{P(0, 0), P(0, 1), P(0, 2), P(0, 3), P(0, 4), P(0, 5)},
		},
		{
			name: "empty cells never match",
			rows: []string{"...", "...", "..."},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindMatches(parseBoard(t, tt.rows...))
			if len(got) != len(tt.want) {
				t.Fatalf("FindMatches() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FindMatches()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
			if HasMatch(parseBoard(t, tt.rows...)) != (len(tt.want) > 0) {
				t.Errorf("HasMatch() disagrees with FindMatches()")
			}
		})
	}
}

func TestFindMatchesSkipsSpecials(t *testing.T) {
	b := parseBoard(t, "RRR", "GBY", "BGB")
	tok := b.At(P(0, 1))
	tok.Special = SpecialRow
	b.Set(P(0, 1), tok)

	if got := FindMatches(b); len(got) != 0 {
		t.Errorf("FindMatches() with marked token = %v, want none", got)
	}
}

func TestFindMatchesIsPure(t *testing.T) {
	b := parseBoard(t, greenBoard...)
	before := b.Clone()
	FindMatches(b)
	if !b.Equal(before) {
		t.Error("FindMatches modified the board")
	}
}
