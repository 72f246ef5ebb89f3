package models

import "time"

// Review token lifecycle.
const (
	ReviewPending   = "pending"
	ReviewCompleted = "completed"
)

// Reviewer verdicts.
const (
	VerdictAccept  = "accept"
	VerdictChanges = "changes"
	VerdictReject  = "reject"
)

// IsValidVerdict reports whether v is a member of the verdict enum.
func IsValidVerdict(v string) bool {
	switch v {
	case VerdictAccept, VerdictChanges, VerdictReject:
		return true
	}
	return false
}

// ReviewToken is a single-use review capability bound to one submission.
// The token string is the only credential: possession authorizes exactly
// one redemption. The record is never deleted; completed tokens form the
// permanent review history.
type ReviewToken struct {
	ReviewID     int       `gorm:"primaryKey;autoIncrement;column:review_id" json:"review_id"`
	Token        string    `gorm:"column:token;size:32;uniqueIndex" json:"token"`
	SubmissionID string    `gorm:"column:submission_id;index" json:"submission_id"`
	ReviewerName string    `gorm:"column:reviewer_name" json:"reviewer_name"`
	Status       string    `gorm:"column:status" json:"status"`
	Verdict      *string   `gorm:"column:verdict" json:"verdict,omitempty"`
	Feedback     *string   `gorm:"column:feedback" json:"feedback,omitempty"`
	CreateAt     time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
}

// TableName specifies the table name for ReviewToken.
func (ReviewToken) TableName() string {
	return "review_tokens"
}
