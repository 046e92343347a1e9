package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
)

// A submission whose submitter record no longer resolves is skipped and
// counted, not surfaced as an error and not silently lost.
func TestGroupByReportSkipsOrphanedSubmitters(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .rating_submissions. WHERE report_id = \\? AND kind = \\?"),
			args:    []driver.Value{int64(3), "INTERNAL"},
			columns: []string{"submission_id", "kind", "user_id", "report_id"},
			rows: [][]driver.Value{
				{int64(1), "INTERNAL", int64(10), int64(3)},
				{int64(2), "INTERNAL", int64(11), int64(3)},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT user_id, user_fname, user_lname FROM .users. WHERE user_id = \\?"),
			columns: []string{"user_id", "user_fname", "user_lname"},
			rows:    [][]driver.Value{{int64(10), "Alice", "Nguyen"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .stakeholder_ratings. WHERE submission_id = \\? ORDER BY rating_id ASC"),
			args:    []driver.Value{int64(1)},
			columns: []string{"rating_id", "submission_id", "stakeholder_id", "influence", "impact", "score"},
			rows: [][]driver.Value{
				{int64(101), int64(1), int64(7), 4.0, 2.0, 3.0},
				{int64(102), int64(1), int64(9), 1.0, 5.0, 3.0},
			},
		},
		{
			// Submitter 11 no longer exists
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT user_id, user_fname, user_lname FROM .users. WHERE user_id = \\?"),
			columns: []string{"user_id", "user_fname", "user_lname"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewGroupingService(db)

	grouped, err := svc.GroupByReport(3, "INTERNAL", nil)
	if err != nil {
		t.Fatalf("GroupByReport returned error: %v", err)
	}

	if len(grouped.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(grouped.Groups))
	}
	if grouped.Skipped != 1 {
		t.Fatalf("expected 1 skipped submission, got %d", grouped.Skipped)
	}

	entry, ok := grouped.Groups[1]
	if !ok {
		t.Fatalf("expected group keyed by submission id 1, got %#v", grouped.Groups)
	}
	if entry.SubmitterID != 10 {
		t.Fatalf("expected submitter id 10, got %d", entry.SubmitterID)
	}
	if entry.SubmitterName != "Alice Nguyen" {
		t.Fatalf("expected submitter name Alice Nguyen, got %q", entry.SubmitterName)
	}
	if len(entry.StakeholderRatings) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(entry.StakeholderRatings))
	}
	if entry.StakeholderRatings[0].RatingID != 101 || entry.StakeholderRatings[1].RatingID != 102 {
		t.Fatalf("expected insertion order to be preserved, got %+v", entry.StakeholderRatings)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestGroupByReportFiltersTopicRatingsByType(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .rating_submissions. WHERE report_id = \\? AND kind = \\?"),
			args:    []driver.Value{int64(3), "STAKEHOLDER"},
			columns: []string{"submission_id", "kind", "stakeholder_id", "report_id"},
			rows: [][]driver.Value{
				{int64(5), "STAKEHOLDER", int64(3), int64(3)},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT stakeholder_id, name FROM .stakeholders. WHERE stakeholder_id = \\?"),
			columns: []string{"stakeholder_id", "name"},
			rows:    [][]driver.Value{{int64(3), "Community Board"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .topic_ratings. WHERE submission_id = \\? AND rating_type = \\? ORDER BY rating_id ASC"),
			args:    []driver.Value{int64(5), "IMPACT"},
			columns: []string{"rating_id", "submission_id", "topic_id", "rating_type", "magnitude", "relevance", "score"},
			rows: [][]driver.Value{
				{int64(201), int64(5), int64(1), "IMPACT", 4.0, 2.0, 3.0},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewGroupingService(db)

	ratingType := "IMPACT"
	grouped, err := svc.GroupByReport(3, "STAKEHOLDER", &ratingType)
	if err != nil {
		t.Fatalf("GroupByReport returned error: %v", err)
	}

	entry, ok := grouped.Groups[5]
	if !ok {
		t.Fatalf("expected group keyed by submission id 5, got %#v", grouped.Groups)
	}
	if entry.SubmitterName != "Community Board" {
		t.Fatalf("expected stakeholder name, got %q", entry.SubmitterName)
	}
	if len(entry.TopicRatings) != 1 || entry.TopicRatings[0].RatingType != "IMPACT" {
		t.Fatalf("expected one IMPACT rating, got %+v", entry.TopicRatings)
	}
	if grouped.Skipped != 0 {
		t.Fatalf("expected no skipped submissions, got %d", grouped.Skipped)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
