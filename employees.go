package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"inventaris/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func listEmployeesHandler(c *gin.Context) {
	var items []models.Employee
	if err := db.Order("created_at desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func employeesByDepartmentHandler(c *gin.Context) {
	var items []models.Employee
	if err := db.Where("department = ?", c.Param("department")).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func employeesByStatusHandler(c *gin.Context) {
	var items []models.Employee
	if err := db.Where("status = ?", c.Param("status")).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func getEmployeeHandler(c *gin.Context) {
	var emp models.Employee
	if err := db.First(&emp, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, emp)
}

func createEmployeeHandler(c *gin.Context) {
	var emp models.Employee
	if err := c.ShouldBindJSON(&emp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(emp.Name) == "" || strings.TrimSpace(emp.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}
	// reject duplicate email before hitting the unique index
	var existing models.Employee
	if err := db.Where("email = ?", emp.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee with this email already exists"})
		return
	}
	now := time.Now().UTC()
	emp.ID = uuid.NewString()
	if emp.Status == "" {
		emp.Status = "active"
	}
	emp.CreatedAt = now
	emp.UpdatedAt = now
	if err := db.Create(&emp).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "employee with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// updateEmployeeHandler binds the body over the stored record, so fields
// absent from the request keep their prior values.
func updateEmployeeHandler(c *gin.Context) {
	var emp models.Employee
	if err := db.First(&emp, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	id, createdAt := emp.ID, emp.CreatedAt
	if err := c.ShouldBindJSON(&emp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	emp.ID = id
	emp.CreatedAt = createdAt
	emp.UpdatedAt = time.Now().UTC()
	if err := db.Save(&emp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, emp)
}

func deleteEmployeeHandler(c *gin.Context) {
	res := db.Delete(&models.Employee{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "employee deleted successfully"})
}
