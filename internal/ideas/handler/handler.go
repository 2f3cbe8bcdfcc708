package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ideagen/ideagen/backend/go-services/internal/ideas"
	"github.com/ideagen/ideagen/backend/go-services/internal/ideas/service"
	"github.com/ideagen/ideagen/backend/go-services/pkg/apperr"
	"github.com/ideagen/ideagen/backend/go-services/pkg/middleware"
)

type toggleRequest struct {
	Idea      *ideas.SavedIdea `json:"idea"`
	SessionID string           `json:"sessionId"`
}

type deleteRequest struct {
	IdeaID    string `json:"ideaId"`
	SessionID string `json:"sessionId"`
}

// RegisterRoutes mounts GET, POST and DELETE /api/saved-ideas.
func RegisterRoutes(r gin.IRoutes, svc *service.Service, sessions middleware.SessionResolver) {
	if sessions == nil {
		sessions = middleware.FaceValueResolver{}
	}
	resolve := func(c *gin.Context, raw, msg string) (string, bool) {
		sid, err := sessions.Resolve(c.Request.Context(), raw)
		if err != nil {
			apperr.JSON(c, apperr.Wrap(apperr.KindInvalidRequest, msg, err))
			return "", false
		}
		return sid, true
	}

	r.GET("/api/saved-ideas", func(c *gin.Context) {
		sid, ok := resolve(c, c.Query("sessionId"), "Session ID is required")
		if !ok {
			return
		}
		list, err := svc.List(c.Request.Context(), sid)
		if err != nil {
			apperr.JSON(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ideas": list})
	})

	r.POST("/api/saved-ideas", func(c *gin.Context) {
		var req toggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.JSON(c, apperr.Wrap(apperr.KindInvalidRequest, "Invalid request body", err))
			return
		}
		if req.Idea == nil {
			apperr.JSON(c, apperr.New(apperr.KindInvalidRequest, "Session ID and idea are required"))
			return
		}
		sid, ok := resolve(c, req.SessionID, "Session ID and idea are required")
		if !ok {
			return
		}
		res, err := svc.Toggle(c.Request.Context(), sid, req.Idea)
		if err != nil {
			apperr.JSON(c, err)
			return
		}
		msg := "Idea saved"
		if res.Removed {
			msg = "Idea removed"
		}
		c.JSON(http.StatusOK, gin.H{"message": msg, "ideas": res.Ideas})
	})

	r.DELETE("/api/saved-ideas", func(c *gin.Context) {
		var req deleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.JSON(c, apperr.Wrap(apperr.KindInvalidRequest, "Invalid request body", err))
			return
		}
		if req.IdeaID == "" {
			apperr.JSON(c, apperr.New(apperr.KindInvalidRequest, "Session ID and idea ID are required"))
			return
		}
		sid, ok := resolve(c, req.SessionID, "Session ID and idea ID are required")
		if !ok {
			return
		}
		list, err := svc.Delete(c.Request.Context(), sid, req.IdeaID)
		if err != nil {
			apperr.JSON(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Idea deleted", "ideas": list})
	})
}
