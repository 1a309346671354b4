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

func listAssetsHandler(c *gin.Context) {
	var items []models.SystemAsset
	if err := db.Order("created_at desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func assetsByCategoryHandler(c *gin.Context) {
	var items []models.SystemAsset
	if err := db.Where("category = ?", c.Param("category")).Order("created_at desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func getAssetHandler(c *gin.Context) {
	var asset models.SystemAsset
	if err := db.First(&asset, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, asset)
}

func createAssetHandler(c *gin.Context) {
	var asset models.SystemAsset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(asset.Category) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}
	now := time.Now().UTC()
	asset.ID = uuid.NewString()
	asset.CreatedAt = now
	asset.UpdatedAt = now
	if err := db.Create(&asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// updateAssetHandler binds the body over the stored record, so fields absent
// from the request keep their prior values.
func updateAssetHandler(c *gin.Context) {
	var asset models.SystemAsset
	if err := db.First(&asset, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	id, createdAt := asset.ID, asset.CreatedAt
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	asset.ID = id
	asset.CreatedAt = createdAt
	asset.UpdatedAt = time.Now().UTC()
	if err := db.Save(&asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, asset)
}

func deleteAssetHandler(c *gin.Context) {
	res := db.Delete(&models.SystemAsset{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "asset deleted successfully"})
}
