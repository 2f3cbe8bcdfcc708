package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ideagen/ideagen/backend/go-services/internal/prompts"
)

type categoryView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// RegisterCategories exposes the prompt catalog keys and labels in display order.
func RegisterCategories(rg gin.IRoutes) {
	rg.GET("/api/categories", func(c *gin.Context) {
		list := prompts.List()
		out := make([]categoryView, 0, len(list))
		for _, cat := range list {
			out = append(out, categoryView{Key: cat.Key, Label: cat.Label})
		}
		c.JSON(http.StatusOK, gin.H{"categories": out})
	})
}
