package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"editorial-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ReviewService owns the review_tokens table and implements the capability
// token protocol: issuance (editor plane, gated by the pre-shared key),
// anonymous lookup and single-shot redemption (possession plane).
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// NewReviewSecret generates the capability secret: 16 bytes from
// crypto/rand rendered as a 32-character hex string.
func NewReviewSecret() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate review secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// VerifyReviewKey checks the out-of-band admin key that authorizes token
// issuance. Deployments may configure the key hashed (bcrypt) or plain; the
// plain comparison is constant-time. A deployment with neither configured
// refuses all issuance.
func VerifyReviewKey(presented, expectedPlain, expectedHash string) error {
	if presented == "" {
		return ErrUnauthorized
	}

	if expectedHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(expectedHash), []byte(presented)) != nil {
			return ErrUnauthorized
		}
		return nil
	}

	if expectedPlain == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(presented), []byte(expectedPlain)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// IssueResult is returned to the editor after a token is created.
type IssueResult struct {
	ReviewID  int    `json:"review_id"`
	MagicLink string `json:"magic_link"`
}

// Issue creates a pending review token bound to the submission and returns
// the redemption link. Side effect: a submission still in "received" is
// advanced to "peer-review" with a single conditional update, so concurrent
// first issuances cannot race the status.
func (s *ReviewService) Issue(submissionID, reviewerName, baseURL string) (*IssueResult, error) {
	if strings.TrimSpace(submissionID) == "" {
		return nil, missingField("submission_id")
	}
	if strings.TrimSpace(reviewerName) == "" {
		reviewerName = "Anonymous"
	}

	var submission models.Submission
	err := s.db.Select("submission_id").
		Where("submission_id = ?", submissionID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeFailure(err)
	}

	secret, err := NewReviewSecret()
	if err != nil {
		return nil, err
	}

	token := models.ReviewToken{
		Token:        secret,
		SubmissionID: submissionID,
		ReviewerName: strings.TrimSpace(reviewerName),
		Status:       models.ReviewPending,
		CreateAt:     time.Now(),
	}
	if err := s.db.Create(&token).Error; err != nil {
		return nil, storeFailure(err)
	}

	// First reviewer invitation moves the manuscript into peer review.
	// The status guard makes this a no-op for every later invitation and
	// leaves editor overrides untouched.
	err = s.db.Model(&models.Submission{}).
		Where("submission_id = ? AND status = ?", submissionID, models.StatusReceived).
		Updates(map[string]interface{}{
			"status":    models.StatusPeerReview,
			"update_at": time.Now(),
		}).Error
	if err != nil {
		return nil, storeFailure(err)
	}

	return &IssueResult{
		ReviewID:  token.ReviewID,
		MagicLink: fmt.Sprintf("%s/review/evaluate?token=%s", strings.TrimRight(baseURL, "/"), secret),
	}, nil
}

// ListBySubmission returns all tokens for a submission, newest first. The
// caller is expected to reach this from an already-gated editor view.
func (s *ReviewService) ListBySubmission(submissionID string) ([]models.ReviewToken, error) {
	if strings.TrimSpace(submissionID) == "" {
		return nil, missingField("submission_id")
	}

	var tokens []models.ReviewToken
	err := s.db.Where("submission_id = ?", submissionID).
		Order("create_at DESC, review_id DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, storeFailure(err)
	}
	return tokens, nil
}

// GetByToken resolves a secret to its review record and the owning
// submission. No caller identity is required: the secret is the entire
// authorization. Unknown secrets are indistinguishable from expired ones.
func (s *ReviewService) GetByToken(secret string) (*models.ReviewToken, *models.Submission, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, nil, ErrNotFound
	}

	var token models.ReviewToken
	err := s.db.Where("token = ?", secret).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, storeFailure(err)
	}

	var submission models.Submission
	err = s.db.Where("submission_id = ?", token.SubmissionID).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Tokens hold only a weak reference; surface the review
			// without manuscript content rather than failing.
			return &token, nil, nil
		}
		return nil, nil, storeFailure(err)
	}

	return &token, &submission, nil
}

// Redeem completes a pending token, recording verdict and feedback in the
// same atomic update as the status flip. Redemption is one-way: the update
// is guarded on "pending", so of any number of concurrent attempts exactly
// one wins and later ones get ErrConflict with the first verdict intact.
func (s *ReviewService) Redeem(secret, verdict, feedback string) (*models.ReviewToken, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, missingField("token")
	}
	if strings.TrimSpace(verdict) == "" {
		return nil, missingField("verdict")
	}
	if !models.IsValidVerdict(verdict) {
		return nil, &ValidationError{Field: "verdict", Message: "unknown verdict"}
	}

	result := s.db.Model(&models.ReviewToken{}).
		Where("token = ? AND status = ?", secret, models.ReviewPending).
		Updates(map[string]interface{}{
			"status":   models.ReviewCompleted,
			"verdict":  verdict,
			"feedback": feedback,
		})
	if result.Error != nil {
		return nil, storeFailure(result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the secret is unknown or the token was already
		// completed; look it up to tell the two apart.
		var existing models.ReviewToken
		err := s.db.Where("token = ?", secret).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, storeFailure(err)
		}
		return &existing, ErrConflict
	}

	var updated models.ReviewToken
	if err := s.db.Where("token = ?", secret).First(&updated).Error; err != nil {
		return nil, storeFailure(err)
	}
	return &updated, nil
}
