package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
)

func TestRoundTwo(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{3.333333, 3.33},
		{2.666667, 2.67},
		{3.0, 3.0},
		{0.005, 0.01},
		{0.0, 0.0},
	}
	for _, tc := range cases {
		if got := roundTwo(tc.in); got != tc.want {
			t.Fatalf("roundTwo(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRecomputeSetsRoundedAverages(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT COALESCE\(AVG\(influence\), 0\) AS influence, COALESCE\(AVG\(impact\), 0\) AS impact, COUNT\(\*\) AS count FROM .stakeholder_ratings. WHERE stakeholder_id = \?`),
			args:    []driver.Value{int64(7)},
			columns: []string{"influence", "impact", "count"},
			rows:    [][]driver.Value{{3.333333, 2.666667, int64(3)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE stakeholders SET avg_influence = \\?, avg_impact = \\? WHERE stakeholder_id = \\?"),
			args:    []driver.Value{3.33, 2.67, int64(7)},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAverageService(db)

	if err := svc.Recompute([]int{7}); err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

// A stakeholder with no remaining ratings is reset to zero on both axes,
// never left at its previous average.
func TestRecomputeResetsAveragesWhenNoRatingsRemain(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT COALESCE\(AVG\(influence\).*stakeholder_id = \?`),
			args:    []driver.Value{int64(5)},
			columns: []string{"influence", "impact", "count"},
			rows:    [][]driver.Value{{0.0, 0.0, int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE stakeholders SET avg_influence = \\?, avg_impact = \\? WHERE stakeholder_id = \\?"),
			args:    []driver.Value{0.0, 0.0, int64(5)},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAverageService(db)

	if err := svc.Recompute([]int{5}); err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRecomputeDeduplicatesStakeholderIDs(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT COALESCE\(AVG\(influence\).*stakeholder_id = \?`),
			args:    []driver.Value{int64(7)},
			columns: []string{"influence", "impact", "count"},
			rows:    [][]driver.Value{{3.0, 3.0, int64(2)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE stakeholders SET avg_influence = \\?, avg_impact = \\? WHERE stakeholder_id = \\?"),
			args:    []driver.Value{3.0, 3.0, int64(7)},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAverageService(db)

	// The same id three times must trigger a single recompute.
	if err := svc.Recompute([]int{7, 7, 7}); err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestDistinctIntsPreservesOrder(t *testing.T) {
	got := distinctInts([]int{3, 1, 3, 2, 1})
	want := []int{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
