package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/services"
)

type AuthHandler struct{ svc *services.AuthService }

func NewAuthHandler(svc *services.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

type loginReq struct {
	Registration string `json:"registration" binding:"required"`
	Password     string `json:"password" binding:"required"`
	CourseID     string `json:"course_id"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	courseID := uuid.Nil
	if req.CourseID != "" {
		id, err := uuid.Parse(req.CourseID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
			return
		}
		courseID = id
	}
	result, err := h.svc.Login(req.Registration, req.Password, courseID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, result)
}
