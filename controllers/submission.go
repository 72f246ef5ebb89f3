// controllers/submission.go
package controllers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"editorial-api/config"
	"editorial-api/middleware"
	"editorial-api/services"
	"editorial-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func submissionService() *services.SubmissionService {
	return services.NewSubmissionService(config.DB)
}

func accessPolicy() *services.AccessPolicy {
	return services.NewAccessPolicy(config.EditorEmails())
}

// ===================== SUBMISSION MANAGEMENT =====================

// CreateSubmission handles manuscript intake. The form is multipart so the
// manuscript file can ride along; everything except the file is required
// field validation in the service.
func CreateSubmission(c *gin.Context) {
	in := services.CreateSubmissionInput{
		Title:               c.PostForm("title"),
		Section:             c.PostForm("section"),
		Type:                c.PostForm("type"),
		Authors:             c.PostForm("authors"),
		CorrespondingAuthor: c.PostForm("correspondingAuthor"),
		Email:               c.PostForm("email"),
		Affiliation:         c.PostForm("affiliation"),
		Abstract:            c.PostForm("abstract"),
		Keywords:            c.PostForm("keywords"),
	}

	if file, err := c.FormFile("file"); err == nil && file.Size > 0 {
		fileURL, saveErr := storeManuscript(c, file, in.Title)
		if saveErr != nil {
			log.Printf("failed to store manuscript upload: %v", saveErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
			return
		}
		in.FileURL = fileURL
	}

	submission, err := submissionService().Create(in)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      submission.SubmissionID,
	})
}

// storeManuscript saves the uploaded file under the configured upload
// directory with an unguessable, filesystem-safe name.
func storeManuscript(c *gin.Context, file *multipart.FileHeader, title string) (string, error) {
	uploadPath := config.UploadPath()
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".pdf"
	}

	slug := utils.SafeFileName(title)
	if len(slug) > 50 {
		slug = slug[:50]
	}

	name := fmt.Sprintf("%s-%s%s", uuid.NewString(), slug, ext)
	if err := c.SaveUploadedFile(file, filepath.Join(uploadPath, name)); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}

// GetSubmission returns a single submission. Owners and editors get the
// full record; everyone else gets the public projection.
func GetSubmission(c *gin.Context) {
	submission, err := submissionService().GetByID(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	caller := middleware.CallerEmail(c)
	if accessPolicy().CanViewFull(caller, submission) {
		c.JSON(http.StatusOK, gin.H{"success": true, "submission": submission})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submission": submission.Public()})
}

// GetSubmissions lists submissions. With an email query parameter it
// returns that author's submissions (the tracking dashboard path, which
// deliberately takes the caller-supplied address unverified); without one
// it is the editors' full listing.
func GetSubmissions(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		submissions, err := submissionService().ListByEmail(email)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"submissions": submissions,
			"total":       len(submissions),
		})
		return
	}

	caller := middleware.CallerEmail(c)
	if caller == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}
	if !accessPolicy().IsEditor(caller) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	submissions, err := submissionService().ListAll()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// UpdateSubmissionRequest carries the editor-mutable fields.
type UpdateSubmissionRequest struct {
	Status      *string `json:"status"`
	EditorNotes *string `json:"editor_notes"`
}

// UpdateSubmission lets an editor change a submission's status and
// editorial notes.
func UpdateSubmission(c *gin.Context) {
	caller := middleware.CallerEmail(c)
	if !accessPolicy().IsEditor(caller) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var req UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := submissionService().Update(c.Param("id"), services.UpdateSubmissionInput{
		Status:      req.Status,
		EditorNotes: req.EditorNotes,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submission": submission})
}
