package models

// PostMetric holds per-resource readership counters. Rows are created
// lazily on first access and counters only ever grow.
type PostMetric struct {
	Slug      string `gorm:"primaryKey;column:slug;size:191" json:"slug"`
	Views     int64  `gorm:"column:views" json:"views"`
	Downloads int64  `gorm:"column:downloads" json:"downloads"`
}

// TableName specifies the table name for PostMetric.
func (PostMetric) TableName() string {
	return "post_metrics"
}
