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

func validPCLaptopType(t string) bool {
	return t == "PC" || t == "Laptop"
}

func listPCLaptopsHandler(c *gin.Context) {
	var items []models.PCLaptop
	if err := db.Order("created_at desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func getPCLaptopHandler(c *gin.Context) {
	var item models.PCLaptop
	if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PC/Laptop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func createPCLaptopHandler(c *gin.Context) {
	var item models.PCLaptop
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPCLaptopType(item.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be PC or Laptop"})
		return
	}
	if strings.TrimSpace(item.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	now := time.Now().UTC()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// updatePCLaptopHandler binds the body over the stored record, so fields
// absent from the request keep their prior values.
func updatePCLaptopHandler(c *gin.Context) {
	var item models.PCLaptop
	if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PC/Laptop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	id, createdAt := item.ID, item.CreatedAt
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPCLaptopType(item.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be PC or Laptop"})
		return
	}
	item.ID = id
	item.CreatedAt = createdAt
	item.UpdatedAt = time.Now().UTC()
	if err := db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func deletePCLaptopHandler(c *gin.Context) {
	res := db.Delete(&models.PCLaptop{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "PC/Laptop not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "PC/Laptop deleted successfully"})
}
