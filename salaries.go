package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inventaris/models"
	"inventaris/pkg/intake"
	"inventaris/pkg/policy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type createSalaryRequest struct {
	UserID       string   `json:"userId"`
	EmployeeName string   `json:"employeeName"`
	Month        int      `json:"month"`
	Year         int      `json:"year"`
	Amount       *float64 `json:"amount"`
	Notes        string   `json:"notes"`
}

func (r createSalaryRequest) validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("userId is required")
	}
	if strings.TrimSpace(r.EmployeeName) == "" {
		return errors.New("employeeName is required")
	}
	if r.Month < 1 || r.Month > 12 {
		return errors.New("month must be between 1 and 12")
	}
	if r.Year < 1900 || r.Year > 3000 {
		return errors.New("year must be between 1900 and 3000")
	}
	if r.Amount == nil {
		return errors.New("amount is required")
	}
	if *r.Amount < 0 {
		return errors.New("amount must be >= 0")
	}
	return nil
}

// updateSalaryRequest carries a partial record; only present fields are
// validated and applied.
type updateSalaryRequest struct {
	EmployeeName *string  `json:"employeeName"`
	Month        *int     `json:"month"`
	Year         *int     `json:"year"`
	Amount       *float64 `json:"amount"`
	Notes        *string  `json:"notes"`
}

func (r updateSalaryRequest) validate() error {
	if r.EmployeeName != nil && strings.TrimSpace(*r.EmployeeName) == "" {
		return errors.New("employeeName must not be empty")
	}
	if r.Month != nil && (*r.Month < 1 || *r.Month > 12) {
		return errors.New("month must be between 1 and 12")
	}
	if r.Year != nil && (*r.Year < 1900 || *r.Year > 3000) {
		return errors.New("year must be between 1900 and 3000")
	}
	if r.Amount != nil && *r.Amount < 0 {
		return errors.New("amount must be >= 0")
	}
	return nil
}

func (r updateSalaryRequest) applyTo(rec *models.SalaryRecord) {
	if r.EmployeeName != nil {
		rec.EmployeeName = *r.EmployeeName
	}
	if r.Month != nil {
		rec.Month = *r.Month
	}
	if r.Year != nil {
		rec.Year = *r.Year
	}
	if r.Amount != nil {
		rec.Amount = *r.Amount
	}
	if r.Notes != nil {
		rec.Notes = *r.Notes
	}
}

type salaryWithDocs struct {
	models.SalaryRecord
	Documents []models.SalaryDocument `json:"documents"`
}

// listSalariesHandler returns all records for admins, own records otherwise.
func listSalariesHandler(c *gin.Context) {
	ident := policy.FromContext(c)
	all, err := listSalaries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	items := all
	if !ident.IsAdmin() {
		items = make([]models.SalaryRecord, 0, len(all))
		for _, rec := range all {
			if rec.UserID == ident.UserID {
				items = append(items, rec)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func getSalaryHandler(c *gin.Context) {
	rec, err := getSalary(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if !policy.FromContext(c).CanView(rec.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	docs, err := documentsForSalary(rec.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, salaryWithDocs{SalaryRecord: *rec, Documents: docs})
}

func createSalaryHandler(c *gin.Context) {
	var req createSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Non-admins may only create records for themselves; admins may set any
	// userId.
	ident := policy.FromContext(c)
	if !ident.IsAdmin() && req.UserID != ident.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot create salary records for another user"})
		return
	}
	now := time.Now().UTC()
	rec := models.SalaryRecord{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		EmployeeName: req.EmployeeName,
		Month:        req.Month,
		Year:         req.Year,
		Amount:       *req.Amount,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := upsertSalary(&rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// updateSalaryHandler is admin-gated at the route. Partial update: unspecified
// fields keep their prior values, updatedAt is restamped.
func updateSalaryHandler(c *gin.Context) {
	rec, err := getSalary(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var req updateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.applyTo(rec)
	rec.UpdatedAt = time.Now().UTC()
	if err := upsertSalary(rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// deleteSalaryHandler is admin-gated at the route. Documents cascade: their
// rows are removed and their files best-effort deleted from disk.
func deleteSalaryHandler(c *gin.Context) {
	id := c.Param("id")
	if _, err := getSalary(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	docs, err := documentsForSalary(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if err := deleteSalary(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	for _, d := range docs {
		_ = deleteDocument(id, d.ID)
		removeDocumentFiles(d.Filename)
	}
	c.Status(http.StatusNoContent)
}

func listDocumentsHandler(c *gin.Context) {
	rec, err := getSalary(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if !policy.FromContext(c).CanView(rec.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	docs, err := documentsForSalary(rec.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": docs})
}

// uploadDocumentsHandler accepts up to 5 files in the multipart field "files".
// The batch is validated before any file is written; owner or admin only.
func uploadDocumentsHandler(c *gin.Context) {
	rec, err := getSalary(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if !policy.FromContext(c).CanView(rec.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	files := form.File["files"]

	in := intake.New(uploadBaseDir())
	stored, err := in.SaveAll(files)
	if err != nil {
		if intake.IsRejection(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	now := time.Now().UTC()
	for _, sf := range stored {
		doc := models.SalaryDocument{
			ID:           uuid.NewString(),
			SalaryID:     rec.ID,
			OriginalName: sf.OriginalName,
			Filename:     sf.Filename,
			MimeType:     sf.MimeType,
			Size:         sf.Size,
			URL:          fmt.Sprintf("/uploads/%s", sf.Filename),
			CreatedAt:    now,
		}
		if err := addDocument(&doc); err != nil {
			// files already on disk stay there; the sweep tool reaps them
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
			return
		}
	}
	docs, err := documentsForSalary(rec.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": docs})
}

// deleteDocumentHandler is admin-gated at the route.
func deleteDocumentHandler(c *gin.Context) {
	salaryID := c.Param("id")
	docID := c.Param("docId")
	if _, err := getSalary(salaryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	doc, err := getDocument(salaryID, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if err := deleteDocument(salaryID, docID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	removeDocumentFiles(doc.Filename)
	c.Status(http.StatusNoContent)
}

// removeDocumentFiles deletes a document's file and its preview, ignoring
// errors; leftovers are the sweep tool's concern.
func removeDocumentFiles(filename string) {
	base := uploadBaseDir()
	_ = os.Remove(filepath.Join(base, filename))
	_ = os.Remove(filepath.Join(base, intake.PreviewName(filename)))
}
