package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
)

func TestIncrementIgnoresEmptySlug(t *testing.T) {
	svc := NewMetricService(nil) // must not touch the store at all

	metric := svc.Increment("", FieldViews)
	if metric.Views != 0 || metric.Downloads != 0 {
		t.Fatalf("expected zero reading for empty slug, got %+v", metric)
	}

	metric = svc.Increment("   ", FieldDownloads)
	if metric.Views != 0 || metric.Downloads != 0 {
		t.Fatalf("expected zero reading for blank slug, got %+v", metric)
	}
}

func TestIncrementRejectsUnknownField(t *testing.T) {
	metric := NewMetricService(nil).Increment("intro-article", MetricField("likes"))
	if metric.Views != 0 || metric.Downloads != 0 {
		t.Fatalf("expected zero reading for unknown field, got %+v", metric)
	}
}

func TestIncrementUpsertsAndReturnsCounters(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)INSERT INTO .post_metrics. .*ON DUPLICATE KEY UPDATE .*views.*\\+ 1"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?i)SELECT \\* FROM .post_metrics. WHERE slug = \\?"),
			columns: []string{"slug", "views", "downloads"},
			rows:    [][]driver.Value{{"intro-article", int64(3), int64(0)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	metric := NewMetricService(db).Increment("intro-article", FieldViews)
	if metric.Views != 3 || metric.Downloads != 0 {
		t.Fatalf("expected views=3 downloads=0, got %+v", metric)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIncrementDegradesToZeroReadingOnStoreFailure(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("(?i)INSERT INTO .post_metrics."),
			err:     errors.New("connection refused"),
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	metric := NewMetricService(db).Increment("intro-article", FieldDownloads)
	if metric.Views != 0 || metric.Downloads != 0 {
		t.Fatalf("expected zero reading on store failure, got %+v", metric)
	}
	if metric.Slug != "intro-article" {
		t.Fatalf("expected slug to be echoed back, got %q", metric.Slug)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
