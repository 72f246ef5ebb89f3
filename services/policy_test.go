package services

import (
	"testing"

	"editorial-api/models"
)

func TestIsOwnerMatchesEmailCaseInsensitively(t *testing.T) {
	submission := &models.Submission{SubmissionID: "CA-TEST1", Email: "a@x.com"}

	if !IsOwner("A@X.com", submission) {
		t.Fatal("case-varied owner email must match")
	}
	if IsOwner("b@x.com", submission) {
		t.Fatal("different email must not match")
	}
	if IsOwner("", submission) {
		t.Fatal("anonymous caller must never be owner")
	}
}

func TestIsEditorAllowList(t *testing.T) {
	policy := NewAccessPolicy([]string{"chief@journal.org", "@editors.journal.org"})

	if !policy.IsEditor("chief@journal.org") {
		t.Fatal("exact allow-list entry must match")
	}
	if !policy.IsEditor("Chief@Journal.org") {
		t.Fatal("allow-list match must be case-insensitive")
	}
	if !policy.IsEditor("someone@editors.journal.org") {
		t.Fatal("substring entry must admit the whole domain")
	}
	if policy.IsEditor("author@u.edu") {
		t.Fatal("unlisted email must not be an editor")
	}
	if policy.IsEditor("") {
		t.Fatal("anonymous caller must not be an editor")
	}
}

func TestEmptyAllowListAdmitsNobody(t *testing.T) {
	policy := NewAccessPolicy(nil)
	if policy.IsEditor("anyone@anywhere.org") {
		t.Fatal("empty allow-list must fail closed")
	}
}

func TestCanViewFull(t *testing.T) {
	policy := NewAccessPolicy([]string{"chief@journal.org"})
	submission := &models.Submission{SubmissionID: "CA-TEST1", Email: "a@x.com"}

	if !policy.CanViewFull("a@x.com", submission) {
		t.Fatal("owner must see the full record")
	}
	if !policy.CanViewFull("chief@journal.org", submission) {
		t.Fatal("editor must see the full record")
	}
	if policy.CanViewFull("b@x.com", submission) {
		t.Fatal("stranger must not see the full record")
	}
	if policy.CanViewFull("", submission) {
		t.Fatal("anonymous caller must not see the full record")
	}
}
