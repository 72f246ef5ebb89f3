package models

import "time"

// Submission lifecycle statuses. Transitions are editor-chosen and the
// workflow is deliberately permissive: any status below is a legal target.
const (
	StatusReceived         = "received"
	StatusEditorialReview  = "editorial-review"
	StatusPeerReview       = "peer-review"
	StatusChangesRequested = "changes-requested"
	StatusAccepted         = "accepted"
	StatusPublished        = "published"
	StatusRejected         = "rejected"
)

var submissionStatuses = map[string]struct{}{
	StatusReceived:         {},
	StatusEditorialReview:  {},
	StatusPeerReview:       {},
	StatusChangesRequested: {},
	StatusAccepted:         {},
	StatusPublished:        {},
	StatusRejected:         {},
}

// IsValidStatus reports whether s is a member of the status enum.
func IsValidStatus(s string) bool {
	_, ok := submissionStatuses[s]
	return ok
}

// Submission represents a manuscript tracked through the editorial lifecycle.
type Submission struct {
	SubmissionID        string     `gorm:"primaryKey;column:submission_id" json:"id"`
	Title               string     `gorm:"column:title" json:"title"`
	Section             string     `gorm:"column:section" json:"section"`
	Type                string     `gorm:"column:type" json:"type"`
	AuthorName          string     `gorm:"column:author_name" json:"author_name"`
	CorrespondingAuthor string     `gorm:"column:corresponding_author" json:"corresponding_author"`
	Email               string     `gorm:"column:email" json:"email"`
	Affiliation         string     `gorm:"column:affiliation" json:"affiliation"`
	Abstract            string     `gorm:"column:abstract" json:"abstract"`
	Keywords            string     `gorm:"column:keywords" json:"keywords"`
	FileURL             string     `gorm:"column:file_url" json:"file_url"`
	EditorNotes         *string    `gorm:"column:editor_notes" json:"editor_notes,omitempty"`
	Status              string     `gorm:"column:status" json:"status"`
	CreateAt            time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt            *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
}

// TableName specifies the table name for Submission.
func (Submission) TableName() string {
	return "submissions"
}

// PublicSubmission is the redacted projection returned to callers without
// owner or editor authority.
type PublicSubmission struct {
	SubmissionID string    `json:"id"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	CreateAt     time.Time `json:"create_at"`
}

// Public returns the redacted projection of the submission.
func (s *Submission) Public() PublicSubmission {
	return PublicSubmission{
		SubmissionID: s.SubmissionID,
		Title:        s.Title,
		Status:       s.Status,
		CreateAt:     s.CreateAt,
	}
}
