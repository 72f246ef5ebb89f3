package services

import (
	"log"
	"strings"

	"editorial-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MetricField selects which counter an increment targets.
type MetricField string

const (
	FieldViews     MetricField = "views"
	FieldDownloads MetricField = "downloads"
)

// MetricService owns the post_metrics counters. All operations are
// best-effort: readership counting must never break the page that triggered
// it, so failures degrade to a zero reading and a log line.
type MetricService struct {
	db *gorm.DB
}

func NewMetricService(db *gorm.DB) *MetricService {
	return &MetricService{db: db}
}

// Increment bumps one counter for the slug and returns the current pair.
// The row is created on first use and the increment runs server-side as a
// single upsert, so concurrent hits on a fresh slug neither collide on the
// key nor lose updates. An empty slug is silently ignored.
func (s *MetricService) Increment(slug string, field MetricField) models.PostMetric {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return models.PostMetric{}
	}
	if field != FieldViews && field != FieldDownloads {
		log.Printf("metrics: unknown field %q for slug %s", field, slug)
		return models.PostMetric{Slug: slug}
	}

	row := models.PostMetric{Slug: slug}
	column := string(field)
	if field == FieldViews {
		row.Views = 1
	} else {
		row.Downloads = 1
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column: gorm.Expr(column + " + 1"),
		}),
	}).Create(&row).Error
	if err != nil {
		log.Printf("metrics: failed to increment %s for slug %s: %v", field, slug, err)
		return models.PostMetric{Slug: slug}
	}

	var current models.PostMetric
	if err := s.db.Where("slug = ?", slug).First(&current).Error; err != nil {
		log.Printf("metrics: failed to read counters for slug %s: %v", slug, err)
		return models.PostMetric{Slug: slug}
	}
	return current
}
