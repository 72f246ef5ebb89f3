package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"editorial-api/models"
	"editorial-api/utils"

	"gorm.io/gorm"
)

// SubmissionService owns the submissions table: manuscript intake, reads
// under the access policy, and editor-driven updates.
type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// idSeq disambiguates ids generated within the same millisecond.
var idSeq uint64

// NewSubmissionID generates a public submission identifier. The original
// numbering scheme is kept (CA- plus a base-36 millisecond timestamp) with a
// per-process sequence and random tail appended so concurrent intakes can
// never collide.
func NewSubmissionID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	seq := atomic.AddUint64(&idSeq, 1)

	var tail [3]byte
	if _, err := rand.Read(tail[:]); err != nil {
		// crypto/rand never fails on supported platforms; the sequence
		// alone still keeps ids unique within the process.
		tail = [3]byte{byte(seq >> 16), byte(seq >> 8), byte(seq)}
	}

	return fmt.Sprintf("CA-%s%04X%s", ts, seq&0xFFFF, strings.ToUpper(hex.EncodeToString(tail[:])))
}

// CreateSubmissionInput carries the manuscript intake form.
type CreateSubmissionInput struct {
	Title               string
	Section             string
	Type                string
	Authors             string
	CorrespondingAuthor string
	Email               string
	Affiliation         string
	Abstract            string
	Keywords            string
	FileURL             string
}

// Create validates the intake form and persists a new submission with
// status "received". The generated identifier is returned on the record.
func (s *SubmissionService) Create(in CreateSubmissionInput) (*models.Submission, error) {
	required := []struct {
		field string
		value string
	}{
		{"title", in.Title},
		{"section", in.Section},
		{"type", in.Type},
		{"authors", in.Authors},
		{"correspondingAuthor", in.CorrespondingAuthor},
		{"email", in.Email},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, missingField(r.field)
		}
	}
	if !utils.ValidateEmail(in.Email) {
		return nil, &ValidationError{Field: "email", Message: "invalid email address"}
	}

	submission := models.Submission{
		SubmissionID:        NewSubmissionID(),
		Title:               utils.SanitizeInput(in.Title),
		Section:             utils.SanitizeInput(in.Section),
		Type:                utils.SanitizeInput(in.Type),
		AuthorName:          utils.SanitizeInput(in.Authors),
		CorrespondingAuthor: utils.SanitizeInput(in.CorrespondingAuthor),
		Email:               utils.SanitizeInput(in.Email),
		Affiliation:         utils.SanitizeInput(in.Affiliation),
		Abstract:            utils.SanitizeInput(in.Abstract),
		Keywords:            utils.SanitizeInput(in.Keywords),
		FileURL:             in.FileURL,
		Status:              models.StatusReceived,
		CreateAt:            time.Now(),
	}

	if err := s.db.Create(&submission).Error; err != nil {
		return nil, storeFailure(err)
	}

	return &submission, nil
}

// GetByID returns the full record; redaction is the caller's concern.
func (s *SubmissionService) GetByID(id string) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.Where("submission_id = ?", id).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeFailure(err)
	}
	return &submission, nil
}

// ListByEmail returns all submissions whose corresponding-author email
// matches case-insensitively, newest first. An empty result is not an error.
func (s *SubmissionService) ListByEmail(email string) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.Where("LOWER(email) = ?", strings.ToLower(email)).
		Order("create_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, storeFailure(err)
	}
	return submissions, nil
}

// ListAll returns every submission, newest first. Callers gate this behind
// the editor allow-list.
func (s *SubmissionService) ListAll() ([]models.Submission, error) {
	var submissions []models.Submission
	if err := s.db.Order("create_at DESC").Find(&submissions).Error; err != nil {
		return nil, storeFailure(err)
	}
	return submissions, nil
}

// UpdateSubmissionInput carries the editor-mutable fields. Nil means leave
// unchanged.
type UpdateSubmissionInput struct {
	Status      *string
	EditorNotes *string
}

// Update applies an editor change to status and/or editorial notes. The
// status must belong to the closed enum; beyond that the workflow is
// permissive and any target is accepted.
func (s *SubmissionService) Update(id string, in UpdateSubmissionInput) (*models.Submission, error) {
	if in.Status == nil && in.EditorNotes == nil {
		return nil, &ValidationError{Field: "status", Message: "nothing to update"}
	}
	if in.Status != nil && !models.IsValidStatus(*in.Status) {
		return nil, &ValidationError{Field: "status", Message: "unknown status"}
	}

	submission, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{"update_at": now}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.EditorNotes != nil {
		updates["editor_notes"] = *in.EditorNotes
	}

	err = s.db.Model(&models.Submission{}).
		Where("submission_id = ?", id).
		Updates(updates).Error
	if err != nil {
		return nil, storeFailure(err)
	}

	if in.Status != nil {
		submission.Status = *in.Status
	}
	if in.EditorNotes != nil {
		submission.EditorNotes = in.EditorNotes
	}
	submission.UpdateAt = &now
	return submission, nil
}
