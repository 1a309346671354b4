package main

import (
	"net/http"

	"inventaris/models"
	"inventaris/pkg/sheets"

	"github.com/gin-gonic/gin"
)

func sheetsInfoHandler(mirror *sheets.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"configured":     mirror.Configured(),
			"spreadsheetUrl": mirror.SpreadsheetURL(),
		})
	}
}

// sheetsSyncHandler snapshots the inventory tables and POSTs them to the
// spreadsheet webhook. The webhook is a black box; failures surface as 502.
func sheetsSyncHandler(mirror *sheets.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !mirror.Configured() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "spreadsheet mirror not configured"})
			return
		}
		var assets []models.SystemAsset
		if err := db.Order("created_at desc").Find(&assets).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
			return
		}
		var pcs []models.PCLaptop
		if err := db.Order("created_at desc").Find(&pcs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
			return
		}
		payload := gin.H{"systemAssets": assets, "pcLaptops": pcs}
		if err := mirror.Sync(c.Request.Context(), payload); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "spreadsheetUrl": mirror.SpreadsheetURL()})
	}
}
