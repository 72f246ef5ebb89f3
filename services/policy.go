package services

import (
	"strings"

	"editorial-api/models"
)

// AccessPolicy decides which view of a submission a caller may see. Two
// independent authorization planes exist: verified-identity (owner and
// editor checks below, fed by the session middleware) and secret-possession
// (review tokens, handled by ReviewService). They are intentionally never
// unified.
type AccessPolicy struct {
	editors []string
}

// NewAccessPolicy builds a policy around the configured editor allow-list.
func NewAccessPolicy(editors []string) *AccessPolicy {
	return &AccessPolicy{editors: editors}
}

// IsEditor reports whether the verified email belongs to the editorial
// allow-list. Entries match by case-insensitive equality or substring, so a
// domain fragment can cover a whole masthead. An empty allow-list admits
// nobody.
func (p *AccessPolicy) IsEditor(email string) bool {
	if email == "" {
		return false
	}

	lowered := strings.ToLower(email)
	for _, entry := range p.editors {
		e := strings.ToLower(entry)
		if e == lowered || strings.Contains(lowered, e) {
			return true
		}
	}
	return false
}

// IsOwner reports whether the verified email owns the submission, matched
// case-insensitively against the corresponding-author email.
func IsOwner(callerEmail string, submission *models.Submission) bool {
	return callerEmail != "" && strings.EqualFold(callerEmail, submission.Email)
}

// CanViewFull reports whether the caller may see the unredacted record.
func (p *AccessPolicy) CanViewFull(callerEmail string, submission *models.Submission) bool {
	return IsOwner(callerEmail, submission) || p.IsEditor(callerEmail)
}
