// controllers/review.go
package controllers

import (
	"net/http"

	"editorial-api/config"
	"editorial-api/services"

	"github.com/gin-gonic/gin"
)

func reviewService() *services.ReviewService {
	return services.NewReviewService(config.DB)
}

// magicLinkBase resolves the origin the redemption link should point at:
// the requesting frontend's Origin header when present, the configured
// base URL otherwise.
func magicLinkBase(c *gin.Context) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		return origin
	}
	return config.BaseURL()
}

// ===================== REVIEW TOKENS =====================

// IssueReviewRequest asks for a new reviewer magic link. The key is the
// pre-shared editorial secret, checked independently of session identity.
type IssueReviewRequest struct {
	SubmissionID string `json:"submission_id"`
	ReviewerName string `json:"reviewer_name"`
	Key          string `json:"key"`
}

// IssueReviewToken creates a pending review token for a submission and
// returns the magic link for the invited reviewer.
func IssueReviewToken(c *gin.Context) {
	var req IssueReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.VerifyReviewKey(req.Key, config.ReviewAdminKey(), config.ReviewAdminKeyHash()); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	result, err := reviewService().Issue(req.SubmissionID, req.ReviewerName, magicLinkBase(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"review_id":  result.ReviewID,
		"magic_link": result.MagicLink,
	})
}

// ListReviewTokens returns the review history for a submission, newest
// first. This path is reached from the already-gated editor panel.
func ListReviewTokens(c *gin.Context) {
	tokens, err := reviewService().ListBySubmission(c.Query("submission_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": tokens,
		"total":   len(tokens),
	})
}

// GetReviewAssignment resolves a reviewer's secret to the assignment view:
// the review record plus the manuscript fields the reviewer needs. The
// secret is the only credential on this path.
func GetReviewAssignment(c *gin.Context) {
	review, submission, err := reviewService().GetByToken(c.Query("token"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := gin.H{
		"success": true,
		"review": gin.H{
			"review_id":     review.ReviewID,
			"reviewer_name": review.ReviewerName,
			"status":        review.Status,
			"verdict":       review.Verdict,
			"create_at":     review.CreateAt,
		},
	}
	if submission != nil {
		resp["submission"] = gin.H{
			"id":       submission.SubmissionID,
			"title":    submission.Title,
			"abstract": submission.Abstract,
			"file_url": submission.FileURL,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// RedeemReviewRequest submits a reviewer's verdict.
type RedeemReviewRequest struct {
	Token    string `json:"token"`
	Verdict  string `json:"verdict"`
	Feedback string `json:"feedback"`
}

// RedeemReviewToken records the reviewer's verdict and completes the token.
// A token redeems exactly once; replays get a conflict and the original
// verdict stands.
func RedeemReviewToken(c *gin.Context) {
	var req RedeemReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := reviewService().Redeem(req.Token, req.Verdict, req.Feedback)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "review": review})
}
