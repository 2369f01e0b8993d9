package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome godoc
// @Summary Service banner
// @Description Identifies the service
// @Tags home
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func GetHome(c *gin.Context) {
	c.String(http.StatusOK, "GST ledger backend")
}
